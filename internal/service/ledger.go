package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"signalboard/internal/consts"
	"signalboard/internal/dao"
	"signalboard/internal/model"
	"signalboard/internal/model/entity"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"
	"signalboard/pkg/kafka"
	"signalboard/pkg/logger"
	"signalboard/pkg/recorder"
	"signalboard/utils/uuid"

	"github.com/spf13/cast"
)

type LedgerService interface {
	CapitalGet(ctx context.Context, userId int64) (res model.CapitalRes, err error)
	CapitalUpdate(ctx context.Context, userId int64, raw string) (res model.CapitalRes, err error)
	Settle(ctx context.Context, userId int64, req model.SettleReq) (res model.SettleRes, err error)
	TradeList(ctx context.Context, userId int64, req model.TradeListReq) (res model.TradeListRes, err error)
	LiveStats(ctx context.Context, userId int64) (res model.LiveStats, err error)
	Report(ctx context.Context, userId int64) (res model.TradeReport, err error)
}

// ledgerService 模拟资金账本。余额以数据库为准，任何写入失败直接报错，不做乐观回退
type ledgerService struct {
	ud       dao.UserDao
	sd       dao.SignalDao
	td       dao.TradeDao
	iSrv     *uuid.SnowNode
	rec      recorder.Recorder
	producer kafka.ProducerService
}

func NewLedgerService(ud dao.UserDao, sd dao.SignalDao, td dao.TradeDao, rec recorder.Recorder, producer kafka.ProducerService) *ledgerService {
	return &ledgerService{
		ud:       ud,
		sd:       sd,
		td:       td,
		iSrv:     uuid.NewNode(5),
		rec:      rec,
		producer: producer,
	}
}

func (l *ledgerService) CapitalGet(ctx context.Context, userId int64) (res model.CapitalRes, err error) {
	res.Capital, err = l.ud.UserGetCapital(ctx, userId)
	return
}

// CapitalUpdate 手动改写余额。输入按字符串接收，解析失败或非正数一律拒绝，余额保持不变
func (l *ledgerService) CapitalUpdate(ctx context.Context, userId int64, raw string) (res model.CapitalRes, err error) {
	capital, parseErr := cast.ToFloat64E(raw)
	if parseErr != nil || math.IsNaN(capital) || math.IsInf(capital, 0) || capital <= 0 {
		return res, errors.WithCode(ecode.CapitalErr, "无效的资金数值: %s", raw)
	}
	if err = l.ud.UserUpdateCapital(ctx, userId, capital); err != nil {
		return res, errors.Wrap(err, ecode.DatabaseErr, "资金更新失败")
	}
	res.Capital = capital
	l.audit(userId, "capital_update", 0, capital)
	return res, nil
}

// Settle 结算一条信号：写入流水并原子更新余额，之后信号置为CLOSED不可重复结算
func (l *ledgerService) Settle(ctx context.Context, userId int64, req model.SettleReq) (res model.SettleRes, err error) {
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return res, errors.WithCode(ecode.SettleErr, "结算金额必须为正数")
	}

	signal, err := l.sd.SignalGetById(ctx, userId, req.SignalId)
	if err != nil {
		return res, errors.Wrap(err, ecode.NotFoundErr, "信号不存在")
	}
	if !signal.IsSettleable() {
		return res, errors.WithCode(ecode.SettleErr, "观望信号不可结算")
	}
	if signal.Status == "CLOSED" {
		return res, errors.WithCode(ecode.SettleErr, "该信号已结算")
	}

	// WIN记正数，LOSS记负数，余额由事务内增量更新得出
	signed := req.Amount
	if req.Result == consts.ResultLoss {
		signed = -req.Amount
	}

	trade := entity.Trade{
		Id:       l.iSrv.GenSnowID(),
		UserId:   userId,
		SignalId: signal.Id,
		Date:     time.Now(),
		Asset:    signal.Asset,
		Action:   signal.Action,
		Result:   req.Result,
		Amount:   signed,
	}
	newCapital, err := l.td.TradeSettle(ctx, &trade)
	if err != nil {
		if errors.IsCode(err, ecode.SettleErr) {
			return res, err
		}
		return res, errors.Wrap(err, ecode.DatabaseErr, "结算写入失败")
	}

	l.audit(userId, "settle", signed, newCapital)
	l.publishUpdate(ctx, userId, trade)

	res.Trade = trade
	res.Capital = newCapital
	return res, nil
}

func (l *ledgerService) TradeList(ctx context.Context, userId int64, req model.TradeListReq) (res model.TradeListRes, err error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	res.Trades, err = l.td.TradeListByUser(ctx, userId, req.Limit, req.Page)
	return
}

// LiveStats 胜率按 round(win/count*100) 取整
func (l *ledgerService) LiveStats(ctx context.Context, userId int64) (res model.LiveStats, err error) {
	trades, err := l.td.TradeListAll(ctx, userId)
	if err != nil {
		return res, err
	}
	for _, t := range trades {
		res.TradeCount++
		if t.Result == consts.ResultWin {
			res.WinCount++
			res.TotalProfit += t.Amount
		} else {
			res.TotalLoss += t.Amount
		}
	}
	if res.TradeCount > 0 {
		res.WinRate = int(math.Round(float64(res.WinCount) / float64(res.TradeCount) * 100))
	}
	return res, nil
}

// Report 周报聚合。逐日盈亏按流水日期累加，只保留最近7个有交易的自然日
func (l *ledgerService) Report(ctx context.Context, userId int64) (res model.TradeReport, err error) {
	trades, err := l.td.TradeListAll(ctx, userId)
	if err != nil {
		return res, err
	}

	var winSum, lossSum float64
	var days []string
	daily := make(map[string]float64)
	for _, t := range trades {
		res.TotalTrades++
		if t.Result == consts.ResultWin {
			res.WinCount++
			winSum += t.Amount
		} else {
			res.LossCount++
			lossSum += t.Amount
		}
		day := t.Date.Format("02/01")
		if _, ok := daily[day]; !ok {
			days = append(days, day)
		}
		daily[day] += t.Amount
	}
	if res.TotalTrades > 0 {
		res.WinRate = int(math.Round(float64(res.WinCount) / float64(res.TotalTrades) * 100))
	}
	if res.WinCount > 0 {
		res.AvgWin = winSum / float64(res.WinCount)
	}
	if res.LossCount > 0 {
		res.AvgLoss = lossSum / float64(res.LossCount)
	}
	if len(days) > 7 {
		days = days[len(days)-7:]
	}
	for _, day := range days {
		res.Daily = append(res.Daily, model.DailyPnl{Date: day, Pnl: daily[day]})
	}
	return res, nil
}

// audit 账本变动追加到审计日志文件，失败不影响主流程
func (l *ledgerService) audit(userId int64, op string, amount, balance float64) {
	if l.rec == nil {
		return
	}
	entry := map[string]interface{}{
		"time":    time.Now().Format(consts.TimeLayout),
		"user_id": userId,
		"op":      op,
		"amount":  amount,
		"balance": balance,
	}
	if err := l.rec.Record(entry); err != nil {
		logger.Errorf("审计日志写入失败: %v", err)
	}
}

func (l *ledgerService) publishUpdate(ctx context.Context, userId int64, trade entity.Trade) {
	if l.producer == nil {
		return
	}
	event := model.ActivityEvent{
		Type:      consts.ActivityUpdate,
		UserId:    userId,
		Detail:    "settled " + trade.Asset + " " + trade.Result,
		Timestamp: time.Now().Unix(),
	}
	if err := l.producer.Produce(ctx, []byte(strconv.FormatInt(userId, 10)), event); err != nil {
		logger.Errorf("活动事件写入失败: %v", err)
	}
}
