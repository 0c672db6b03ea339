package service

import (
	"context"

	"signalboard/internal/dao"
	"signalboard/internal/model"
)

type AdminService interface {
	AdminUserList(ctx context.Context, req model.AdminUserListReq) (res model.AdminUserListRes, err error)
}

type adminService struct {
	ud dao.UserDao
}

func NewAdminService(ud dao.UserDao) *adminService {
	return &adminService{ud: ud}
}

// AdminUserList 全量用户视图，汇总指标按过滤后的结果计算
func (a *adminService) AdminUserList(ctx context.Context, req model.AdminUserListReq) (res model.AdminUserListRes, err error) {
	users, err := a.ud.AdminUserList(ctx, req.Search)
	if err != nil {
		return res, err
	}
	res.Users = users
	res.TotalUsers = len(users)
	for _, u := range users {
		res.TotalCapital += u.Capital
	}
	return res, nil
}
