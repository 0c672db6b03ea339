package conf

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

// 配置加载（API密钥等）

type Db struct {
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

type JwtConfig struct {
	Secret                  string `yaml:"secret"`
	JwtTtl                  int64  `yaml:"ttl"`              // token 有效期（秒）
	JwtBlacklistGracePeriod int64  `yaml:"blacklistperiod" ` // 黑名单宽限时间（秒）
}

type KafkaConfig struct {
	Broker        string `yaml:"broker"`
	ActivityTopic string `yaml:"activity-topic"` // 用户活动事件的topic
	GroupID       string `yaml:"group-id"`
}

// LlmConfig 生成式AI（Gemini）相关配置
type LlmConfig struct {
	ApiKey    string `yaml:"api-key"`
	BaseURL   string `yaml:"base-url"`   // 默认 https://generativelanguage.googleapis.com/v1beta/models
	FlashName string `yaml:"flash-name"` // 快速模型，用于新闻和绩效审查
	ProName   string `yaml:"pro-name"`   // 深度模型，用于回测
	Timeout   int    `yaml:"timeout"`    // 请求超时（秒）
}

// LookupConfig 公网IP归属查询，best-effort
type LookupConfig struct {
	URL     string `yaml:"url"`
	Timeout int    `yaml:"timeout"`
}

type NewsConfig struct {
	RefreshInterval time.Duration `yaml:"refresh-interval"` // 经济日历刷新周期，默认5分钟
}

type LedgerConfig struct {
	InitialCapital float64 `yaml:"initial-capital"` // 新用户的初始模拟资金
	AuditLogPath   string  `yaml:"audit-log-path"`  // 平仓结算的本地流水记录
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Db     `yaml:"database"`
	Log    LogConfig    `yaml:"log"`
	Jwt    JwtConfig    `yaml:"jwt"`
	Redis  RedisConfig  `yaml:"redis"`
	Kafka  KafkaConfig  `yaml:"kafka"`
	Llm    LlmConfig    `yaml:"llm"`
	Lookup LookupConfig `yaml:"lookup"`
	News   NewsConfig   `yaml:"news"`
	Ledger LedgerConfig `yaml:"ledger"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	return nil
}
