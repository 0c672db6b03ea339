package query

import (
	"context"
	"signalboard/internal/dao"
	"signalboard/internal/model"
	"signalboard/internal/model/entity"
	"time"

	"gorm.io/gorm"
)

var _ dao.UserDao = (*userDao)(nil)

type userDao struct {
	ds *gorm.DB
}

func NewUserDao(ds *gorm.DB) *userDao {
	return &userDao{
		ds: ds,
	}
}

func (u *userDao) UserGetByName(ctx context.Context, username string) (entity.User, error) {
	var user entity.User
	err := u.ds.WithContext(ctx).Model(&entity.User{}).Where("username = ?", username).Find(&user).Error
	return user, err
}

func (u *userDao) UserGetById(ctx context.Context, userId int64) (model.UserInfo, error) {
	var user model.UserInfo
	err := u.ds.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userId).Find(&user).Error
	return user, err
}

func (u *userDao) UserCreate(ctx context.Context, user *entity.User) error {
	var existingUser entity.User
	// username唯一出现问题，处理下：
	// 数据库级别的唯一约束不能完全防止竞态条件，也就是当两个请求几乎同时尝试插入相同的用户名时，可能会出现问题。
	if err := u.ds.WithContext(ctx).Where("username = ?", user.Username).First(&existingUser).Error; err != gorm.ErrRecordNotFound {
		return err
	}
	return u.ds.WithContext(ctx).Create(user).Error
}

func (u *userDao) UserCountByEmail(ctx context.Context, email string) (count int64, err error) {
	err = u.ds.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return
}

func (u *userDao) UserCountByUsername(ctx context.Context, username string) (count int64, err error) {
	err = u.ds.WithContext(ctx).Model(&entity.User{}).Where("username = ?", username).Count(&count).Error
	return
}

func (u *userDao) UserGetCapital(ctx context.Context, userId int64) (float64, error) {
	var capital float64
	err := u.ds.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userId).Select("capital").Find(&capital).Error
	return capital, err
}

func (u *userDao) UserUpdateCapital(ctx context.Context, userId int64, capital float64) error {
	return u.ds.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userId).Update("capital", capital).Error
}

func (u *userDao) UserUpdateLoginMeta(ctx context.Context, userId int64, ip, deviceInfo string, meta []byte) error {
	return u.ds.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userId).Updates(map[string]interface{}{
		"ip_address":      ip,
		"device_info":     deviceInfo,
		"last_login_meta": meta,
		"last_login":      time.Now(),
	}).Error
}

func (u *userDao) UserGetIsAdministrator(ctx context.Context, userId int64) (isAdministrator bool, err error) {
	err = u.ds.WithContext(ctx).Model(entity.User{}).Where("id = ?", userId).Select("is_administrator").Find(&isAdministrator).Error
	return
}

func (u *userDao) AdminUserList(ctx context.Context, search string) ([]model.AdminUserRes, error) {
	var users []model.AdminUserRes
	q := u.ds.WithContext(ctx).Model(&entity.User{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("username LIKE ? OR email LIKE ? OR ip_address LIKE ?", like, like, like)
	}
	err := q.Order("last_login desc").Find(&users).Error
	return users, err
}
