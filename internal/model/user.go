package model

import (
	"signalboard/utils"
)

// 用户登陆发起请求的参数
type UserLoginReq struct {
	Username string `json:"username" validate:"required" label:"用户名"`
	Password string `json:"password" validate:"required" label:"密码"`
}

// 用户登陆成功响应的结构体
type UserLoginRes struct {
	Token           string `json:"token"`
	Timeout         int    `json:"timeout"`
	IsAdministrator bool   `json:"is_administrator"` // 是否为管理员
}

// 用户的token状态
type UserAuthStatusRes struct {
	// 是否无效
	IsInvalid bool `json:"is_invalid"`
}

// 用户注册的参数
type UserRegisterReq struct {
	Username string `json:"username" validate:"required,username" label:"用户名"`
	Password string `json:"password" validate:"required,min=8" label:"密码"`
	Email    string `json:"email" validate:"required,email" label:"邮箱地址"`
	Captcha  string `json:"captcha" validate:"required" label:"验证码"`
}

type UserRegisterRes struct {
	IsSuccess bool `json:"is_success"`
}

type UserGetInfoRes struct {
	UserId          int64          `json:"user_id"`
	Username        string         `json:"username"`
	Email           string         `json:"email"`
	Capital         float64        `json:"capital"`
	IsAdministrator bool           `json:"is_administrator"`
	LastLogin       utils.JsonTime `json:"last_login"`
}

type UserInfo struct {
	UserId          int64   `gorm:"column:id" json:"user_id"`
	Username        string  `gorm:"column:username" json:"username"`
	Password        string  `gorm:"column:password" json:"-"`
	Email           string  `gorm:"column:email" json:"email"`
	Capital         float64 `gorm:"column:capital" json:"capital"`
	IsActive        bool    `gorm:"column:is_active" json:"is_active"`
	IsAdministrator bool    `gorm:"column:is_administrator;default:false" json:"is_administrator"`
}

type CaptchaRes struct {
	Image string `json:"image"`
}

// CapitalUpdateReq 手动修改模拟资金。字符串形式接收，非法输入直接拒绝
type CapitalUpdateReq struct {
	Capital string `json:"capital" validate:"required" label:"资金"`
}

type CapitalRes struct {
	Capital float64 `json:"capital"`
}

// LoginMeta 登录侧信道采集的连接元数据
type LoginMeta struct {
	Ip        string `json:"ip"`
	Location  string `json:"location"` // 归属地，查询失败为 Unknown
	UserAgent string `json:"user_agent"`
}
