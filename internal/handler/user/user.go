package user

import (
	"signalboard/internal/consts"
	"signalboard/internal/model"
	"signalboard/internal/service"
	"signalboard/pkg/errors"
	"signalboard/pkg/errors/ecode"
	"signalboard/pkg/logger"
	"signalboard/pkg/response"
	"signalboard/pkg/validator"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
	ledger  service.LedgerService
}

func NewUserHandler(service service.UserService, ledger service.LedgerService) *UserHandler {
	return &UserHandler{service: service, ledger: ledger}
}

// @Summary		用户注册
// @Produce		json
// @Param			object	body		model.UserRegisterReq	true	"注册参数"
// @Success		200		{object}	response.ApiResponse{data=model.UserRegisterRes}
// @Router			/api/v1/auth/register [post]
func (handler *UserHandler) UserRegister() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserRegisterReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "请求参数错误"), nil)
			return
		}
		if err := validator.Struct(req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", err.Error()), nil)
			return
		}

		// 验证验证码是否正确
		if !handler.service.CaptchaVerify(ctx, req.Captcha) {
			response.JSON(ctx, errors.WithCode(ecode.CaptchaErr, "验证码错误"), nil)
			return
		}

		res, err := handler.service.UserRegister(ctx, req)
		if err != nil {
			logger.Error(err.Error())
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		用户登录
// @Produce		json
// @Param			object	body		model.UserLoginReq	true	"登录参数"
// @Success		200		{object}	response.ApiResponse{data=model.UserLoginRes}
// @Router			/api/v1/auth/login [post]
func (handler *UserHandler) UserLogin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserLoginReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "%s", err.Error()), nil)
			return
		}
		res, err := handler.service.UserLogin(ctx, req.Username, req.Password)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		生成图形验证码
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=model.CaptchaRes}
// @Router			/api/v1/auth/captcha [post]
func (handler *UserHandler) CaptchaGen() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.CaptchaGen(ctx)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "验证码生成失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		获取用户信息
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.UserGetInfoRes}
// @Router			/api/v1/user/info [get]
func (handler *UserHandler) UserGetInfo() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.UserGetInfo(ctx, userId)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		获取用户模拟资金
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.CapitalRes}
// @Router			/api/v1/user/balance [get]
func (handler *UserHandler) UserGetBalance() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.ledger.CapitalGet(ctx, userId)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.NotFoundErr, "余额查询失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		手动修改模拟资金
// @Produce		json
// @Param			Authorization	header		string					false	"Bearer 用户令牌"
// @Param			object			body		model.CapitalUpdateReq	true	"资金参数"
// @Success		200				{object}	response.ApiResponse{data=model.CapitalRes}
// @Router			/api/v1/user/capital [post]
func (handler *UserHandler) CapitalUpdate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.CapitalUpdateReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "请求参数错误"), nil)
			return
		}
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.ledger.CapitalUpdate(ctx, userId, req.Capital)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		退出登录
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/user/logout [get]
func (handler *UserHandler) UserLogout() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetString(consts.JWTTokenCtx)
		if err := handler.service.UserLogout(ctx, token); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "退出失败"), nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

// @Summary		换发token
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.UserLoginRes}
// @Router			/api/v1/user/refresh [get]
func (handler *UserHandler) UserRefresh() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.UserRefresh(ctx)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "token换发失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		查询token状态
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.UserAuthStatusRes}
// @Router			/api/v1/user/status [get]
func (handler *UserHandler) UserAuthStatus() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.UserAuthStatus(ctx)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "状态查询失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
