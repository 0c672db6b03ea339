package kafka

import (
	"context"
	"signalboard/pkg/logger"

	json "github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

// Kafka 生产者服务
// 定义接口，方便测试和替换
type ProducerService interface {
	Produce(ctx context.Context, key []byte, msg any) error
	Close()
}

type kafkaProducer struct {
	activityWriter *kafka.Writer // 用户活动事件（注册/登录/资金变动）
}

func NewKafkaProducer(brokerURL, activityTopic string) ProducerService {
	activityWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokerURL),
		Topic:    activityTopic,
		Balancer: &kafka.LeastBytes{}, // 保证写入负载均衡
		Async:    true,                // 活动日志允许异步写，不阻塞登录等主流程
	}
	return &kafkaProducer{
		activityWriter: activityWriter,
	}
}

// Produce 序列化为JSON并写入活动topic
// key用用户id，保证同一用户的事件进入同一个 Partition（有序性）
func (p *kafkaProducer) Produce(ctx context.Context, key []byte, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.activityWriter.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: data,
	})
}

func (p *kafkaProducer) Close() {
	if err := p.activityWriter.Close(); err != nil {
		logger.Errorf("Error closing activity writer: %v", err)
	}
}
