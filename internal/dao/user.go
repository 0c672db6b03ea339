package dao

import (
	"context"
	"signalboard/internal/model"
	"signalboard/internal/model/entity"
)

type UserDao interface {
	// 根据用户名获取user实体
	UserGetByName(ctx context.Context, username string) (entity.User, error)
	// 根据用户id获取用户
	UserGetById(ctx context.Context, userId int64) (model.UserInfo, error)
	// 创建用户
	UserCreate(ctx context.Context, user *entity.User) error
	// 用户邮箱是否已注册
	UserCountByEmail(ctx context.Context, email string) (count int64, err error)
	// 用户名是否已注册
	UserCountByUsername(ctx context.Context, username string) (count int64, err error)
	// 获取用户资金
	UserGetCapital(ctx context.Context, userId int64) (float64, error)
	// 更新用户资金
	UserUpdateCapital(ctx context.Context, userId int64, capital float64) error
	// 登录侧信道：更新连接元数据和最近登录时间
	UserUpdateLoginMeta(ctx context.Context, userId int64, ip, deviceInfo string, meta []byte) error
	// 获取是否是管理员用户
	UserGetIsAdministrator(ctx context.Context, userId int64) (isAdministrator bool, err error)
	// 管理端列表，按last_login倒序，search为username/email/IP子串
	AdminUserList(ctx context.Context, search string) ([]model.AdminUserRes, error)
}
