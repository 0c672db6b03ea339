package model

import (
	"signalboard/utils"
)

type AdminUserListReq struct {
	Search string `form:"search" json:"search"` // username/email/IP 子串过滤
}

type AdminUserRes struct {
	UserId     int64          `gorm:"column:id" json:"user_id"`
	Username   string         `gorm:"column:username" json:"username"`
	Email      string         `gorm:"column:email" json:"email"`
	Capital    float64        `gorm:"column:capital" json:"capital"`
	IpAddress  string         `gorm:"column:ip_address" json:"ip_address"`
	DeviceInfo string         `gorm:"column:device_info" json:"device_info"`
	LastLogin  utils.JsonTime `gorm:"column:last_login" json:"last_login"`
	CreatedAt  utils.JsonTime `gorm:"column:created_at" json:"created_at"`
}

type AdminUserListRes struct {
	Users        []AdminUserRes `json:"users"` // 按last_login倒序
	TotalUsers   int            `json:"total_users"`
	TotalCapital float64        `json:"total_capital"`
}

// ActivityEvent 用户活动事件，经kafka广播给管理端实时日志
type ActivityEvent struct {
	Type      string `json:"type"` // new_user/login/update
	UserId    int64  `json:"user_id"`
	Username  string `json:"username"`
	IpAddress string `json:"ip_address"`
	Detail    string `json:"detail"`
	Timestamp int64  `json:"timestamp"` // unix秒
}
