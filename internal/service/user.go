package service

import (
	"context"
	"signalboard/conf"
	"signalboard/internal/consts"
	"signalboard/internal/dao"
	"signalboard/internal/model"
	"signalboard/internal/model/entity"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"
	"signalboard/pkg/jwt"
	"signalboard/pkg/kafka"
	"signalboard/pkg/logger"
	"signalboard/pkg/lookup"
	"signalboard/pkg/verification"
	"signalboard/utils/security"
	"signalboard/utils/uuid"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

type UserService interface {
	UserRegister(ctx *gin.Context, req model.UserRegisterReq) (res model.UserRegisterRes, err error)
	UserLogin(ctx *gin.Context, username, password string) (res model.UserLoginRes, err error)
	UserLogout(ctx context.Context, tokenstr string) error
	UserRefresh(ctx *gin.Context) (res model.UserLoginRes, err error)
	UserAuthStatus(ctx *gin.Context) (res model.UserAuthStatusRes, err error)
	UserGetInfo(ctx context.Context, userId int64) (res model.UserGetInfoRes, err error)

	CaptchaGen(ctx *gin.Context) (res model.CaptchaRes, err error)
	CaptchaVerify(ctx *gin.Context, code string) bool
}

// userService 实现UserService接口
type userService struct {
	ud       dao.UserDao
	iSrv     *uuid.SnowNode
	lk       *lookup.Client
	producer kafka.ProducerService
}

func NewUserService(ud dao.UserDao, lk *lookup.Client, producer kafka.ProducerService) *userService {
	return &userService{
		ud:       ud,
		iSrv:     uuid.NewNode(3),
		lk:       lk,
		producer: producer,
	}
}

func (u *userService) UserRegister(ctx *gin.Context, req model.UserRegisterReq) (res model.UserRegisterRes, err error) {
	res.IsSuccess = false

	count, err := u.ud.UserCountByUsername(ctx, req.Username)
	if err != nil {
		return res, err
	}
	if count > 0 {
		return res, errors.WithCode(ecode.UserExistErr, "用户名已被注册")
	}
	count, err = u.ud.UserCountByEmail(ctx, req.Email)
	if err != nil {
		return res, err
	}
	if count > 0 {
		return res, errors.WithCode(ecode.UserExistErr, "邮箱已被注册")
	}

	user := entity.User{}
	user.Id = u.iSrv.GenSnowID()
	user.Username = req.Username
	user.Email = req.Email
	user.RegisteredIp = ctx.ClientIP()
	user.IsActive = true
	// 新用户的初始模拟资金
	user.Capital = conf.AppConfig.Ledger.InitialCapital
	if user.Capital <= 0 {
		user.Capital = 1000
	}

	// 加密密码存储
	user.Password, err = security.Encrypt(req.Password)
	if err != nil {
		return res, err
	}
	err = u.ud.UserCreate(ctx, &user)
	if err != nil {
		return res, err
	}
	res.IsSuccess = true
	ctx.Set(consts.UserID, user.Id)

	u.publishActivity(consts.ActivityNewUser, user.Id, user.Username, user.RegisteredIp, "registered")
	return
}

func (u *userService) UserLogin(ctx *gin.Context, username, password string) (res model.UserLoginRes, err error) {
	userInfo, err := u.ud.UserGetByName(ctx, username)
	if err != nil {
		logger.Infof("查询用户失败:%s", err)
		return res, err
	}
	if userInfo.Id == 0 || username != userInfo.Username {
		return res, errors.WithCode(ecode.PasswordErr, "用户名或密码错误")
	}
	if !userInfo.IsActive {
		return res, errors.WithCode(ecode.PasswordErr, "用户未激活")
	}
	if !security.ValidatePassword(password, userInfo.Password) {
		return res, errors.WithCode(ecode.PasswordErr, "用户名或密码错误")
	}

	res, err = u.issueToken(userInfo.Id, userInfo.IsAdministrator)
	if err != nil {
		return res, err
	}

	// 侧信道：采集连接元数据。归属地查询是best-effort，失败不阻塞登录
	ip := ctx.ClientIP()
	ua := ctx.Request.UserAgent()
	go u.captureLoginMeta(userInfo.Id, userInfo.Username, ip, ua)

	return res, nil
}

func (u *userService) issueToken(userId int64, isAdministrator bool) (res model.UserLoginRes, err error) {
	ttl := conf.AppConfig.Jwt.JwtTtl
	exp := time.Now().Add(time.Duration(ttl) * time.Second)
	claims := jwt.BuildClaims(exp, userId, isAdministrator)
	token, err := jwt.GenToken(claims, conf.AppConfig.Jwt.Secret)
	if err != nil {
		return res, err
	}
	res.Token = token
	res.Timeout = int(ttl)
	res.IsAdministrator = isAdministrator
	return res, nil
}

// captureLoginMeta 独立goroutine执行，带自己的超时
func (u *userService) captureLoginMeta(userId int64, username, ip, userAgent string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	meta := model.LoginMeta{
		Ip:        ip,
		Location:  u.lk.Location(ctx, ip),
		UserAgent: userAgent,
	}
	data, err := json.Marshal(meta)
	if err != nil {
		data = []byte("{}")
	}
	if err := u.ud.UserUpdateLoginMeta(ctx, userId, ip, userAgent, data); err != nil {
		logger.Errorf("记录登录元数据失败 user=%d: %v", userId, err)
	}

	u.publishActivity(consts.ActivityLogin, userId, username, ip, "login from "+meta.Location)
}

// publishActivity 把活动事件写入kafka，供管理端实时日志消费。失败只记日志
func (u *userService) publishActivity(eventType string, userId int64, username, ip, detail string) {
	if u.producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	event := model.ActivityEvent{
		Type:      eventType,
		UserId:    userId,
		Username:  username,
		IpAddress: ip,
		Detail:    detail,
		Timestamp: time.Now().Unix(),
	}
	if err := u.producer.Produce(ctx, []byte(strconv.FormatInt(userId, 10)), event); err != nil {
		logger.Errorf("活动事件写入失败: %v", err)
	}
}

func (u *userService) UserLogout(ctx context.Context, tokenstr string) error {
	return jwt.JoinBlackList(ctx, tokenstr, conf.AppConfig.Jwt.Secret)
}

func (u *userService) UserRefresh(ctx *gin.Context) (res model.UserLoginRes, err error) {
	userId := ctx.GetInt64(consts.UserID)
	isAdmin, err := u.ud.UserGetIsAdministrator(ctx, userId)
	if err != nil {
		return res, err
	}
	// 旧token拉黑，换发新token
	oldToken := ctx.GetString(consts.JWTTokenCtx)
	if err = jwt.JoinBlackList(ctx, oldToken, conf.AppConfig.Jwt.Secret); err != nil {
		return res, err
	}
	return u.issueToken(userId, isAdmin)
}

func (u *userService) UserAuthStatus(ctx *gin.Context) (res model.UserAuthStatusRes, err error) {
	token := ctx.GetString(consts.JWTTokenCtx)
	res.IsInvalid = jwt.IsInBlackList(ctx, token)
	return res, nil
}

func (u *userService) UserGetInfo(ctx context.Context, userId int64) (res model.UserGetInfoRes, err error) {
	userInfo, err := u.ud.UserGetById(ctx, userId)
	if err != nil {
		return res, err
	}
	if userInfo.UserId == 0 {
		return res, errors.WithCode(ecode.NotFoundErr, "用户不存在")
	}
	res.UserId = userInfo.UserId
	res.Username = userInfo.Username
	res.Email = userInfo.Email
	res.Capital = userInfo.Capital
	res.IsAdministrator = userInfo.IsAdministrator
	return res, nil
}

func (u *userService) CaptchaGen(ctx *gin.Context) (res model.CaptchaRes, err error) {
	img, err := verification.GenerateCaptcha(ctx)
	if err != nil {
		return res, err
	}
	res.Image = img
	return res, nil
}

func (u *userService) CaptchaVerify(ctx *gin.Context, code string) bool {
	return verification.VerifyCaptcha(ctx, code)
}
