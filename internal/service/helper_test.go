package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"signalboard/internal/model"
	"signalboard/internal/model/entity"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"
	"signalboard/pkg/llm"
)

// 内存版dao和推理器，服务层测试不依赖外部环境

type memUserDao struct {
	mu    sync.Mutex
	users map[int64]*entity.User
}

func newMemUserDao(users ...*entity.User) *memUserDao {
	m := &memUserDao{users: make(map[int64]*entity.User)}
	for _, u := range users {
		m.users[u.Id] = u
	}
	return m
}

func (m *memUserDao) UserGetByName(ctx context.Context, username string) (entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return *u, nil
		}
	}
	return entity.User{}, nil
}

func (m *memUserDao) UserGetById(ctx context.Context, userId int64) (model.UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userId]
	if !ok {
		return model.UserInfo{}, nil
	}
	return model.UserInfo{
		UserId:          u.Id,
		Username:        u.Username,
		Email:           u.Email,
		Capital:         u.Capital,
		IsActive:        u.IsActive,
		IsAdministrator: u.IsAdministrator,
	}, nil
}

func (m *memUserDao) UserCreate(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Id] = user
	return nil
}

func (m *memUserDao) UserCountByEmail(ctx context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, u := range m.users {
		if u.Email == email {
			count++
		}
	}
	return count, nil
}

func (m *memUserDao) UserCountByUsername(ctx context.Context, username string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, u := range m.users {
		if u.Username == username {
			count++
		}
	}
	return count, nil
}

func (m *memUserDao) UserGetCapital(ctx context.Context, userId int64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userId]
	if !ok {
		return 0, errors.WithCode(ecode.NotFoundErr, "user not found")
	}
	return u.Capital, nil
}

func (m *memUserDao) UserUpdateCapital(ctx context.Context, userId int64, capital float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userId]
	if !ok {
		return errors.WithCode(ecode.NotFoundErr, "user not found")
	}
	u.Capital = capital
	return nil
}

func (m *memUserDao) addCapital(userId int64, delta float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userId]
	if !ok {
		return 0, errors.WithCode(ecode.NotFoundErr, "user not found")
	}
	u.Capital += delta
	return u.Capital, nil
}

func (m *memUserDao) UserUpdateLoginMeta(ctx context.Context, userId int64, ip, deviceInfo string, meta []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userId]; ok {
		u.IpAddress = ip
		u.DeviceInfo = deviceInfo
		u.LastLoginMeta = meta
	}
	return nil
}

func (m *memUserDao) UserGetIsAdministrator(ctx context.Context, userId int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userId]; ok {
		return u.IsAdministrator, nil
	}
	return false, nil
}

func (m *memUserDao) AdminUserList(ctx context.Context, search string) ([]model.AdminUserRes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []model.AdminUserRes
	for _, u := range m.users {
		if search != "" &&
			!strings.Contains(u.Username, search) &&
			!strings.Contains(u.Email, search) &&
			!strings.Contains(u.IpAddress, search) {
			continue
		}
		res = append(res, model.AdminUserRes{
			UserId:    u.Id,
			Username:  u.Username,
			Email:     u.Email,
			Capital:   u.Capital,
			IpAddress: u.IpAddress,
			LastLogin: u.LastLogin,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].UserId < res[j].UserId })
	return res, nil
}

type memSignalDao struct {
	mu      sync.Mutex
	signals map[int64]*entity.TradeSignal
}

func newMemSignalDao(signals ...*entity.TradeSignal) *memSignalDao {
	m := &memSignalDao{signals: make(map[int64]*entity.TradeSignal)}
	for _, s := range signals {
		m.signals[s.Id] = s
	}
	return m
}

func (m *memSignalDao) SignalCreate(ctx context.Context, signal *entity.TradeSignal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals[signal.Id] = signal
	return nil
}

func (m *memSignalDao) SignalListByUser(ctx context.Context, userId int64, limit int) ([]entity.TradeSignal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []entity.TradeSignal
	for _, s := range m.signals {
		if s.UserId == userId {
			res = append(res, *s)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Timestamp.After(res[j].Timestamp) })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (m *memSignalDao) SignalGetById(ctx context.Context, userId, signalId int64) (entity.TradeSignal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.signals[signalId]
	if !ok || s.UserId != userId {
		return entity.TradeSignal{}, errors.WithCode(ecode.NotFoundErr, "signal not found")
	}
	return *s, nil
}

// closePending PENDING才翻转，返回是否翻转成功
func (m *memSignalDao) closePending(signalId, userId int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.signals[signalId]
	if !ok || s.UserId != userId || s.Status != "PENDING" {
		return false
	}
	s.Status = "CLOSED"
	return true
}

func (m *memSignalDao) SignalBulkCreate(ctx context.Context, signals []entity.TradeSignal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range signals {
		s := signals[i]
		m.signals[s.Id] = &s
	}
	return nil
}

type memTradeDao struct {
	mu     sync.Mutex
	trades []entity.Trade
	ud     *memUserDao
	sd     *memSignalDao
}

func newMemTradeDao(ud *memUserDao, sd *memSignalDao) *memTradeDao {
	return &memTradeDao{ud: ud, sd: sd}
}

func (m *memTradeDao) TradeSettle(ctx context.Context, trade *entity.Trade) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.sd.closePending(trade.SignalId, trade.UserId) {
		return 0, errors.WithCode(ecode.SettleErr, "signal already settled")
	}
	newCapital, err := m.ud.addCapital(trade.UserId, trade.Amount)
	if err != nil {
		return 0, err
	}
	trade.BalanceAfter = newCapital
	m.trades = append(m.trades, *trade)
	return newCapital, nil
}

func (m *memTradeDao) TradeListByUser(ctx context.Context, userId int64, limit, page int) ([]entity.Trade, error) {
	all, _ := m.TradeListAll(ctx, userId)
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memTradeDao) TradeListAll(ctx context.Context, userId int64) ([]entity.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []entity.Trade
	for _, t := range m.trades {
		if t.UserId == userId {
			res = append(res, t)
		}
	}
	return res, nil
}

func (m *memTradeDao) TradeBulkCreate(ctx context.Context, trades []entity.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append(m.trades, trades...)
	return nil
}

// mockInferencer 按预设回复应答，并记录调用次数
type mockInferencer struct {
	mu      sync.Mutex
	calls   int
	reply   interface{}
	replyFn func(prompt string) interface{}
	err     error
}

func (m *mockInferencer) Generate(ctx context.Context, modelName, prompt string, schema *llm.Schema, temperature float64) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	reply := m.reply
	if m.replyFn != nil {
		reply = m.replyFn(prompt)
	}
	return json.Marshal(reply)
}

func (m *mockInferencer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// memBacktestStore / memReviewCache 对应redis实现的内存版

type memBacktestStore struct {
	mu      sync.Mutex
	results map[int64]*model.BacktestResult
}

func newMemBacktestStore() *memBacktestStore {
	return &memBacktestStore{results: make(map[int64]*model.BacktestResult)}
}

func (m *memBacktestStore) Save(ctx context.Context, userId int64, result *model.BacktestResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[userId] = result
	return nil
}

func (m *memBacktestStore) Load(ctx context.Context, userId int64) (*model.BacktestResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results[userId], nil
}

type memReviewCache struct {
	mu      sync.Mutex
	entries map[string]*model.PerformanceReview
}

func newMemReviewCache() *memReviewCache {
	return &memReviewCache{entries: make(map[string]*model.PerformanceReview)}
}

func (m *memReviewCache) Get(ctx context.Context, userId int64, digest string) (*model.PerformanceReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[digest], nil
}

func (m *memReviewCache) Set(ctx context.Context, userId int64, digest string, review *model.PerformanceReview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[digest] = review
	return nil
}
