package validator

import (
	"reflect"
	"regexp"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validator10 "github.com/go-playground/validator/v10"
	enTrans "github.com/go-playground/validator/v10/translations/en"
	zhTrans "github.com/go-playground/validator/v10/translations/zh"
)

var (
	validate *validator10.Validate
	trans    ut.Translator
	once     sync.Once
)

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{3,19}$`)

// LazyInitGinValidator 初始化校验器和翻译器，language: zh / en
func LazyInitGinValidator(language string) {
	once.Do(func() {
		validate = validator10.New()

		// 用label标签作为报错字段名
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			label := fld.Tag.Get("label")
			if label == "" {
				return fld.Name
			}
			return label
		})

		// 用户名规则：字母开头，4-20位字母数字下划线
		_ = validate.RegisterValidation("username", func(fl validator10.FieldLevel) bool {
			return usernameRegexp.MatchString(fl.Field().String())
		})

		enLoc := en.New()
		zhLoc := zh.New()
		uni := ut.New(enLoc, enLoc, zhLoc)
		switch language {
		case "zh":
			trans, _ = uni.GetTranslator("zh")
			_ = zhTrans.RegisterDefaultTranslations(validate, trans)
		default:
			trans, _ = uni.GetTranslator("en")
			_ = enTrans.RegisterDefaultTranslations(validate, trans)
		}
	})
}

// Struct 校验请求结构体，返回翻译后的第一条错误
func Struct(obj interface{}) error {
	if validate == nil {
		LazyInitGinValidator("en")
	}
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator10.ValidationErrors); ok && trans != nil {
		for _, e := range errs {
			return &translatedError{msg: e.Translate(trans)}
		}
	}
	return err
}

type translatedError struct {
	msg string
}

func (e *translatedError) Error() string { return e.msg }
