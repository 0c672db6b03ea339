package service

import (
	"context"
	"fmt"
	"strconv"

	"signalboard/conf"
	"signalboard/internal/consts"
	"signalboard/internal/model"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"
	"signalboard/pkg/llm"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"
)

// BacktestStore 回测结果只在会话内缓存，不落库。绩效审查从这里取对比基线
type BacktestStore interface {
	Save(ctx context.Context, userId int64, result *model.BacktestResult) error
	Load(ctx context.Context, userId int64) (*model.BacktestResult, error)
}

type redisBacktestStore struct {
	rdb *redis.Client
}

func NewRedisBacktestStore(rdb *redis.Client) *redisBacktestStore {
	return &redisBacktestStore{rdb: rdb}
}

func (r *redisBacktestStore) key(userId int64) string {
	return consts.BacktestResultPrefix + strconv.FormatInt(userId, 10)
}

func (r *redisBacktestStore) Save(ctx context.Context, userId int64, result *model.BacktestResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key(userId), data, consts.RedisExrBacktest).Err()
}

func (r *redisBacktestStore) Load(ctx context.Context, userId int64) (*model.BacktestResult, error) {
	data, err := r.rdb.Get(ctx, r.key(userId)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.BacktestResult
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type BacktestService interface {
	Run(ctx context.Context, userId int64, req model.BacktestReq) (res model.BacktestResult, err error)
}

type backtestService struct {
	inf   llm.Inferencer
	store BacktestStore
}

func NewBacktestService(inf llm.Inferencer, store BacktestStore) *backtestService {
	return &backtestService{inf: inf, store: store}
}

var backtestSchema = &llm.Schema{
	Type: llm.TypeObject,
	Properties: map[string]*llm.Schema{
		"totalTrades":     {Type: llm.TypeNumber},
		"winningTrades":   {Type: llm.TypeNumber},
		"losingTrades":    {Type: llm.TypeNumber},
		"winRate":         {Type: llm.TypeNumber, Description: "percentage 0-100"},
		"totalProfit":     {Type: llm.TypeNumber},
		"totalLoss":       {Type: llm.TypeNumber},
		"finalCapital":    {Type: llm.TypeNumber},
		"maxDrawdown":     {Type: llm.TypeNumber, Description: "percentage 0-100"},
		"strategyQuality": {Type: llm.TypeString, Enum: []string{"Good", "Average", "Weak"}},
		"explanation":     {Type: llm.TypeString},
		"equityCurve": {
			Type: llm.TypeArray,
			Items: &llm.Schema{
				Type: llm.TypeObject,
				Properties: map[string]*llm.Schema{
					"day":     {Type: llm.TypeString},
					"balance": {Type: llm.TypeNumber},
				},
				Required: []string{"day", "balance"},
			},
		},
	},
	Required: []string{
		"totalTrades", "winningTrades", "losingTrades", "winRate",
		"totalProfit", "totalLoss", "finalCapital", "maxDrawdown",
		"strategyQuality", "explanation", "equityCurve",
	},
}

func buildBacktestPrompt(req model.BacktestReq) string {
	return fmt.Sprintf(`Simulate a historical backtest of an AI signal strategy trading %s on the %s timeframe over the last %d days, starting from 1000 USD of capital.

Rules:
- Trades follow a disciplined 1-2%% risk-per-trade budget.
- The equity curve must contain one point per day, labeled "Day 1" .. "Day %d", with realistic ups and downs.
- winningTrades + losingTrades must equal totalTrades, and winRate must match them.
- finalCapital must equal the last equity curve balance.
- strategyQuality reflects overall profitability and drawdown.

Respond with JSON only, matching the response schema exactly.`,
		req.Asset, req.Timeframe, req.Days, req.Days)
}

// Run 每次回测都是重新模拟，结果只缓存不落库
func (b *backtestService) Run(ctx context.Context, userId int64, req model.BacktestReq) (res model.BacktestResult, err error) {
	raw, err := b.inf.Generate(ctx, conf.AppConfig.Llm.FlashName, buildBacktestPrompt(req), backtestSchema, 0.9)
	if err != nil {
		return res, errors.Wrap(err, ecode.InferenceErr, "回测请求失败")
	}
	if err = json.Unmarshal(raw, &res); err != nil {
		return res, errors.Wrap(err, ecode.InferenceErr, "回测结果解析失败")
	}
	if res.TotalTrades == 0 || len(res.EquityCurve) == 0 {
		return res, errors.WithCode(ecode.InferenceErr, "回测结果为空")
	}
	if err = b.store.Save(ctx, userId, &res); err != nil {
		return res, errors.Wrap(err, ecode.DatabaseErr, "回测结果缓存失败")
	}
	return res, nil
}

var _ BacktestStore = (*redisBacktestStore)(nil)
