package service

import (
	"context"
	"fmt"
	"time"

	"signalboard/conf"
	"signalboard/internal/consts"
	"signalboard/internal/dao"
	"signalboard/internal/model"
	"signalboard/internal/model/entity"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"
	"signalboard/pkg/llm"
	"signalboard/utils/uuid"

	json "github.com/goccy/go-json"
)

type SignalService interface {
	Analyze(ctx context.Context, userId int64, req model.AnalyzeReq) (res entity.TradeSignal, err error)
	SignalList(ctx context.Context, userId int64, req model.SignalListReq) (res model.SignalListRes, err error)
}

type signalService struct {
	sd   dao.SignalDao
	ud   dao.UserDao
	inf  llm.Inferencer
	iSrv *uuid.SnowNode
}

func NewSignalService(sd dao.SignalDao, ud dao.UserDao, inf llm.Inferencer) *signalService {
	return &signalService{
		sd:   sd,
		ud:   ud,
		inf:  inf,
		iSrv: uuid.NewNode(4),
	}
}

// analysisSchema 约束模型输出，缺字段的回复直接判为失败
var analysisSchema = &llm.Schema{
	Type: llm.TypeObject,
	Properties: map[string]*llm.Schema{
		"action":               {Type: llm.TypeString, Enum: []string{"BUY", "SELL", "NEUTRAL"}},
		"entryPrice":           {Type: llm.TypeNumber},
		"stopLoss":             {Type: llm.TypeNumber},
		"takeProfit":           {Type: llm.TypeNumber},
		"probability":          {Type: llm.TypeNumber, Description: "confidence 0-100"},
		"riskRewardRatio":      {Type: llm.TypeString},
		"marketCondition":      {Type: llm.TypeString, Enum: []string{"Stable", "Volatile", "High Risk"}},
		"expectedProfitAmount": {Type: llm.TypeNumber},
		"expectedLossAmount":   {Type: llm.TypeNumber},
		"riskAmount":           {Type: llm.TypeNumber},
		"technicalSummary":     {Type: llm.TypeString},
		"trend":                {Type: llm.TypeString, Enum: []string{"Bullish", "Bearish", "Sideways"}},
		"rsiValue":             {Type: llm.TypeNumber},
		"rsiSignal":            {Type: llm.TypeString, Enum: []string{"Positive", "Negative", "Neutral"}},
		"macdSignal":           {Type: llm.TypeString, Enum: []string{"Positive", "Negative", "Neutral"}},
		"emaSignal":            {Type: llm.TypeString, Enum: []string{"Positive", "Negative", "Neutral"}},
		"fundamentalSummary":   {Type: llm.TypeString},
		"sentiment":            {Type: llm.TypeString, Enum: []string{"Risk-On", "Risk-Off", "Neutral"}},
		"keyEvents":            {Type: llm.TypeArray, Items: &llm.Schema{Type: llm.TypeString}},
	},
	Required: []string{
		"action", "entryPrice", "stopLoss", "takeProfit", "probability",
		"riskRewardRatio", "marketCondition", "expectedProfitAmount",
		"expectedLossAmount", "riskAmount", "technicalSummary", "trend",
		"rsiValue", "rsiSignal", "macdSignal", "emaSignal",
		"fundamentalSummary", "sentiment", "keyEvents",
	},
}

// buildAnalysisPrompt 风险预算限定在当前资金的1-2%，置信度不足65时要求模型直接给NEUTRAL
func buildAnalysisPrompt(req model.AnalyzeReq, capital float64) string {
	return fmt.Sprintf(`You are a professional trading analyst. Analyze %s (%s market) on the %s timeframe and produce a single trade recommendation.

Rules:
- Current account capital is %.2f USD. All money amounts (expectedProfitAmount, expectedLossAmount, riskAmount) must assume a risk budget of 1-2%% of this capital.
- probability is your confidence in the recommendation, from 0 to 100.
- If your confidence is below 65, set action to NEUTRAL and explain why in technicalSummary.
- riskRewardRatio is a ratio string such as "1:2.5".
- keyEvents lists upcoming macro events relevant to this asset.
- Base the technical view on RSI, MACD and EMA readings consistent with the %s timeframe.

Respond with JSON only, matching the response schema exactly.`,
		req.Asset, req.MarketType, req.Timeframe, capital, req.Timeframe)
}

func (s *signalService) modelName(modelId string) string {
	if modelId == "pro" {
		return conf.AppConfig.Llm.ProName
	}
	return conf.AppConfig.Llm.FlashName
}

// assetAllowed 资产必须在该市场的预置列表里
func assetAllowed(marketType, asset string) bool {
	for _, a := range consts.AvailableAssets[marketType] {
		if a == asset {
			return true
		}
	}
	return false
}

func (s *signalService) Analyze(ctx context.Context, userId int64, req model.AnalyzeReq) (res entity.TradeSignal, err error) {
	if !assetAllowed(req.MarketType, req.Asset) {
		return res, errors.WithCode(ecode.ValidateErr, "该市场不支持此资产: %s", req.Asset)
	}

	capital, err := s.ud.UserGetCapital(ctx, userId)
	if err != nil {
		return res, err
	}

	raw, err := s.inf.Generate(ctx, s.modelName(req.ModelId), buildAnalysisPrompt(req, capital), analysisSchema, 0.7)
	if err != nil {
		return res, errors.Wrap(err, ecode.InferenceErr, "分析请求失败")
	}

	var payload model.SignalPayload
	if err = json.Unmarshal(raw, &payload); err != nil {
		return res, errors.Wrap(err, ecode.InferenceErr, "模型回复解析失败")
	}
	if payload.Action == "" {
		return res, errors.WithCode(ecode.InferenceErr, "模型回复缺少action")
	}

	res = s.payloadToSignal(userId, req, payload)
	if err = s.sd.SignalCreate(ctx, &res); err != nil {
		return res, errors.Wrap(err, ecode.DatabaseErr, "信号保存失败")
	}
	return res, nil
}

// payloadToSignal 指标摘要收进indicators_json，信号本身创建后不再修改
func (s *signalService) payloadToSignal(userId int64, req model.AnalyzeReq, p model.SignalPayload) entity.TradeSignal {
	indicators := []model.TechnicalIndicator{
		{Name: "RSI", Value: p.RsiValue, Signal: p.RsiSignal},
		{Name: "MACD", Value: p.MacdSignal, Signal: p.MacdSignal},
		{Name: "EMA (50/200)", Value: p.EmaSignal, Signal: p.EmaSignal},
	}
	indicatorsJson, _ := json.Marshal(indicators)
	keyEventsJson, _ := json.Marshal(p.KeyEvents)

	return entity.TradeSignal{
		Id:         s.iSrv.GenSnowID(),
		UserId:     userId,
		Asset:      req.Asset,
		MarketType: req.MarketType,
		ModelUsed:  s.modelName(req.ModelId),
		Timeframe:  req.Timeframe,
		Timestamp:  time.Now(),

		Action:          p.Action,
		EntryPrice:      p.EntryPrice,
		StopLoss:        p.StopLoss,
		TakeProfit:      p.TakeProfit,
		Probability:     p.Probability,
		RiskRewardRatio: p.RiskRewardRatio,
		MarketCondition: p.MarketCondition,

		ExpectedProfitAmount: p.ExpectedProfitAmount,
		ExpectedLossAmount:   p.ExpectedLossAmount,
		RiskAmount:           p.RiskAmount,

		Status: "PENDING",

		TechnicalSummary:   p.TechnicalSummary,
		Trend:              p.Trend,
		Indicators:         indicatorsJson,
		FundamentalSummary: p.FundamentalSummary,
		Sentiment:          p.Sentiment,
		KeyEvents:          keyEventsJson,
	}
}

func (s *signalService) SignalList(ctx context.Context, userId int64, req model.SignalListReq) (res model.SignalListRes, err error) {
	if req.Limit <= 0 {
		req.Limit = 10
	}
	res.Signals, err = s.sd.SignalListByUser(ctx, userId, req.Limit)
	return
}
