package service

import (
	"context"
	"math"
	"time"

	"signalboard/internal/consts"
	"signalboard/internal/dao"
	"signalboard/internal/model"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"
	"signalboard/pkg/logger"
	"signalboard/utils/uuid"

	json "github.com/goccy/go-json"
)

type ExportService interface {
	Export(ctx context.Context, userId int64) (doc model.ExportDocument, err error)
	Import(ctx context.Context, userId int64, raw []byte) (res model.ImportRes, err error)
}

// exportService 全量备份与还原。导入会在当前账号下重建流水和信号
type exportService struct {
	ud    dao.UserDao
	sd    dao.SignalDao
	td    dao.TradeDao
	store BacktestStore
	iSrv  *uuid.SnowNode
}

func NewExportService(ud dao.UserDao, sd dao.SignalDao, td dao.TradeDao, store BacktestStore) *exportService {
	return &exportService{
		ud:    ud,
		sd:    sd,
		td:    td,
		store: store,
		iSrv:  uuid.NewNode(6),
	}
}

func (e *exportService) Export(ctx context.Context, userId int64) (doc model.ExportDocument, err error) {
	doc.Capital, err = e.ud.UserGetCapital(ctx, userId)
	if err != nil {
		return doc, err
	}
	doc.History, err = e.td.TradeListAll(ctx, userId)
	if err != nil {
		return doc, err
	}
	// 信号全量带出，上限放宽到1000条
	doc.Signals, err = e.sd.SignalListByUser(ctx, userId, 1000)
	if err != nil {
		return doc, err
	}
	doc.BacktestResult, err = e.store.Load(ctx, userId)
	if err != nil {
		return doc, err
	}
	doc.ExportDate = time.Now().Format(consts.TimeLayout)
	return doc, nil
}

// Import 校验通过才动账。id全部重新生成，避免与现有数据冲突
func (e *exportService) Import(ctx context.Context, userId int64, raw []byte) (res model.ImportRes, err error) {
	var doc model.ExportDocument
	if err = json.Unmarshal(raw, &doc); err != nil {
		return res, errors.Wrap(err, ecode.ImportErr, "备份文件解析失败")
	}
	if math.IsNaN(doc.Capital) || math.IsInf(doc.Capital, 0) || doc.Capital <= 0 {
		return res, errors.WithCode(ecode.ImportErr, "备份中的资金数值无效")
	}
	for i := range doc.History {
		if doc.History[i].Result != consts.ResultWin && doc.History[i].Result != consts.ResultLoss {
			return res, errors.WithCode(ecode.ImportErr, "备份中存在非法流水记录")
		}
	}

	for i := range doc.Signals {
		doc.Signals[i].Id = e.iSrv.GenSnowID()
		doc.Signals[i].UserId = userId
	}
	for i := range doc.History {
		doc.History[i].Id = e.iSrv.GenSnowID()
		doc.History[i].UserId = userId
	}

	if err = e.sd.SignalBulkCreate(ctx, doc.Signals); err != nil {
		return res, errors.Wrap(err, ecode.DatabaseErr, "信号导入失败")
	}
	if err = e.td.TradeBulkCreate(ctx, doc.History); err != nil {
		return res, errors.Wrap(err, ecode.DatabaseErr, "流水导入失败")
	}
	if err = e.ud.UserUpdateCapital(ctx, userId, doc.Capital); err != nil {
		return res, errors.Wrap(err, ecode.DatabaseErr, "资金还原失败")
	}
	if doc.BacktestResult != nil {
		// 回测基线只是缓存，保存失败不回滚导入
		if serr := e.store.Save(ctx, userId, doc.BacktestResult); serr != nil {
			logger.Errorf("回测基线还原失败: %v", serr)
		}
	}

	res.Capital = doc.Capital
	res.ImportedTrades = len(doc.History)
	res.ImportedSignals = len(doc.Signals)
	return res, nil
}
