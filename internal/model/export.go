package model

import (
	"signalboard/internal/model/entity"
)

// ExportDocument 全量备份文档，导出后可在新会话导入还原
type ExportDocument struct {
	Capital        float64              `json:"capital"`
	History        []entity.Trade       `json:"history"`
	Signals        []entity.TradeSignal `json:"signals"`
	BacktestResult *BacktestResult      `json:"backtestResult"`
	ExportDate     string               `json:"exportDate"`
}

type ImportRes struct {
	Capital         float64 `json:"capital"`
	ImportedTrades  int     `json:"imported_trades"`
	ImportedSignals int     `json:"imported_signals"`
}
