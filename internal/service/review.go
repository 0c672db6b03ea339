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
	"signalboard/pkg/logger"
	"signalboard/utils/security"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"
)

// ReviewCache 审查结论按统计指纹缓存，同一组数据只发起一次远程调用
type ReviewCache interface {
	Get(ctx context.Context, userId int64, digest string) (*model.PerformanceReview, error)
	Set(ctx context.Context, userId int64, digest string, review *model.PerformanceReview) error
}

type redisReviewCache struct {
	rdb *redis.Client
}

func NewRedisReviewCache(rdb *redis.Client) *redisReviewCache {
	return &redisReviewCache{rdb: rdb}
}

func (r *redisReviewCache) key(userId int64, digest string) string {
	return consts.PerformanceReviewPrefix + strconv.FormatInt(userId, 10) + ":" + digest
}

func (r *redisReviewCache) Get(ctx context.Context, userId int64, digest string) (*model.PerformanceReview, error) {
	data, err := r.rdb.Get(ctx, r.key(userId, digest)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var review model.PerformanceReview
	if err = json.Unmarshal(data, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *redisReviewCache) Set(ctx context.Context, userId int64, digest string, review *model.PerformanceReview) error {
	data, err := json.Marshal(review)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key(userId, digest), data, consts.RedisExrBacktest).Err()
}

var _ ReviewCache = (*redisReviewCache)(nil)

type ReviewService interface {
	Review(ctx context.Context, userId int64) (res model.PerformanceReview, err error)
}

type reviewService struct {
	ledger LedgerService
	store  BacktestStore
	cache  ReviewCache
	inf    llm.Inferencer
}

func NewReviewService(ledger LedgerService, store BacktestStore, rc ReviewCache, inf llm.Inferencer) *reviewService {
	return &reviewService{
		ledger: ledger,
		store:  store,
		cache:  rc,
		inf:    inf,
	}
}

var reviewSchema = &llm.Schema{
	Type: llm.TypeObject,
	Properties: map[string]*llm.Schema{
		"status":          {Type: llm.TypeString, Enum: []string{"Safe", "Caution", "Stop"}},
		"liveWinRate":     {Type: llm.TypeNumber},
		"backtestWinRate": {Type: llm.TypeNumber},
		"riskAdjustment":  {Type: llm.TypeString},
		"advice":          {Type: llm.TypeString},
		"reason":          {Type: llm.TypeString},
	},
	Required: []string{"status", "liveWinRate", "backtestWinRate", "riskAdjustment", "advice", "reason"},
}

func buildReviewPrompt(stats model.LiveStats, backtest *model.BacktestResult) string {
	return fmt.Sprintf(`You are a risk manager reviewing a trader's live performance against their backtest baseline.

Live results: %d settled trades, %d wins, %d%% win rate, total profit %.2f, total loss %.2f.
Backtest baseline: %d trades, %.1f%% win rate, strategy quality "%s", max drawdown %.1f%%.

Decide whether the trader should keep going (Safe), tighten risk (Caution), or pause trading (Stop). riskAdjustment is a concrete instruction such as "Reduce to 1%%". Echo the live and backtest win rates in liveWinRate and backtestWinRate.

Respond with JSON only, matching the response schema exactly.`,
		stats.TradeCount, stats.WinCount, stats.WinRate, stats.TotalProfit, stats.TotalLoss,
		backtest.TotalTrades, backtest.WinRate, backtest.StrategyQuality, backtest.MaxDrawdown)
}

// Review 双重门槛：实盘不足3笔或没有回测基线都不发起远程调用。
// 缓存key带(实盘统计+回测指纹)，数据没变就复用上次结论
func (r *reviewService) Review(ctx context.Context, userId int64) (res model.PerformanceReview, err error) {
	stats, err := r.ledger.LiveStats(ctx, userId)
	if err != nil {
		return res, err
	}
	if stats.TradeCount < consts.ReviewMinTradeCount {
		return res, errors.WithCode(ecode.ReviewGateErr,
			"实盘结算不足%d笔，暂不审查", consts.ReviewMinTradeCount)
	}

	backtest, err := r.store.Load(ctx, userId)
	if err != nil {
		return res, err
	}
	if backtest == nil {
		return res, errors.WithCode(ecode.ReviewGateErr, "请先运行一次回测")
	}

	digest := reviewDigest(stats, backtest)
	if cached, cerr := r.cache.Get(ctx, userId, digest); cerr == nil && cached != nil {
		return *cached, nil
	}

	raw, err := r.inf.Generate(ctx, conf.AppConfig.Llm.FlashName, buildReviewPrompt(stats, backtest), reviewSchema, 0.3)
	if err != nil {
		return res, errors.Wrap(err, ecode.InferenceErr, "审查请求失败")
	}
	if err = json.Unmarshal(raw, &res); err != nil {
		return res, errors.Wrap(err, ecode.InferenceErr, "审查结论解析失败")
	}

	if cerr := r.cache.Set(ctx, userId, digest, &res); cerr != nil {
		// 缓存失败只影响下次是否复用，不影响本次结论
		logger.Errorf("审查结论缓存失败: %v", cerr)
	}
	return res, nil
}

// reviewDigest 实盘笔数/胜率与回测指纹共同决定结论是否需要重算
func reviewDigest(stats model.LiveStats, backtest *model.BacktestResult) string {
	btRaw, _ := json.Marshal(backtest)
	return security.Md5(fmt.Sprintf("%d|%d|%s", stats.TradeCount, stats.WinRate, security.Md5(string(btRaw))))
}
