package entity

import (
	"signalboard/utils"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

type User struct {
	Id              int64                 `gorm:"column:id;primary_key;" json:"id"`
	Username        string                `gorm:"column:username;not null;unique" json:"username"` // unique 用户名唯一且不能为空
	Email           string                `gorm:"column:email;unique" json:"email"`                // unique 邮箱号唯一
	Password        string                `gorm:"column:password" json:"-"`
	RegisteredIp    string                `gorm:"column:registered_ip" json:"registered_ip"`
	IsActive        bool                  `gorm:"column:is_active" json:"is_active"`
	IsAdministrator bool                  `gorm:"column:is_administrator;default:false" json:"is_administrator"` // 是否为管理员
	Capital         float64               `gorm:"column:capital" json:"capital"`                                 // 模拟资金，恒为正数
	IpAddress       string                `gorm:"column:ip_address" json:"ip_address"`                           // 最近一次登录IP
	DeviceInfo      string                `gorm:"column:device_info" json:"device_info"`                         // 最近一次登录User-Agent
	LastLoginMeta   datatypes.JSON        `gorm:"column:last_login_meta;type:json" json:"last_login_meta"`       // {ip, location, user_agent}
	LastLogin       utils.JsonTime        `gorm:"column:last_login" json:"last_login"`
	CreatedAt       utils.JsonTime        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       utils.JsonTime        `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt       utils.JsonTime        `gorm:"column:deleted_at" json:"deleted_at" `
	IsDel           soft_delete.DeletedAt `gorm:"softDelete:flag,DeletedAtField:DeletedAt"`
	Trades          []Trade               `gorm:"foreignKey:user_id;references:id"`
}

func (User) TableName() string {
	return "user"
}
