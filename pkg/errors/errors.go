package errors

import (
	"errors"
	"fmt"
	"signalboard/pkg/errors/ecode"
)

// 带错误码的业务错误，响应层通过DecodeErr还原code和message
type withCode struct {
	code    int
	message string
	cause   error
}

func (w *withCode) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s: %v", w.message, w.cause)
	}
	return w.message
}

func (w *withCode) Unwrap() error { return w.cause }

// WithCode 创建一个带错误码的错误
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{
		code:    code,
		message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装底层错误并附加错误码和提示
func Wrap(err error, code int, format string, args ...interface{}) error {
	return &withCode{
		code:    code,
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// DecodeErr 解出错误码和提示信息，nil表示成功
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, "OK"
	}
	var wc *withCode
	if errors.As(err, &wc) {
		return wc.code, wc.message
	}
	return ecode.Unknown, err.Error()
}

// IsCode 判断错误是否携带指定错误码
func IsCode(err error, code int) bool {
	var wc *withCode
	if errors.As(err, &wc) {
		return wc.code == code
	}
	return false
}
