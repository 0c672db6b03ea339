package ecode

// 错误码定义，0表示无错误
const (
	Success = 0

	Unknown        = 10001
	ValidateErr    = 10002
	NotFoundErr    = 10003
	DatabaseErr    = 10004
	RequireAuthErr = 10005
	CaptchaErr     = 10006

	// 业务错误
	PasswordErr   = 20001 // 用户名或密码错误
	UserExistErr  = 20002 // 用户名或邮箱已注册
	CapitalErr    = 20003 // 资金输入非法（非正数/非有限数）
	SettleErr     = 20004 // 信号不可结算（NEUTRAL或不存在）
	InferenceErr  = 20005 // 生成式AI调用失败
	ReviewGateErr = 20006 // 实盘笔数不足，不发起绩效审查
	ImportErr     = 20007 // 导入的备份文档非法
	PermissionErr = 20008 // 非管理员
)
