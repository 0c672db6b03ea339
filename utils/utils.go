package utils

import (
	"database/sql/driver"
	"fmt"
	"math/rand"
	"signalboard/internal/consts"
	"time"
)

// JsonTime 统一时间序列化格式，兼容gorm读写
type JsonTime time.Time

func (t JsonTime) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", tt.Format(consts.TimeLayout))), nil
}

func (t *JsonTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*t = JsonTime(time.Time{})
		return nil
	}
	tt, err := time.ParseInLocation(`"`+consts.TimeLayout+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = JsonTime(tt)
	return nil
}

func (t JsonTime) Value() (driver.Value, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil, nil
	}
	return tt, nil
}

func (t *JsonTime) Scan(v interface{}) error {
	if value, ok := v.(time.Time); ok {
		*t = JsonTime(value)
		return nil
	}
	return fmt.Errorf("can not convert %v to timestamp", v)
}

func (t JsonTime) Time() time.Time {
	return time.Time(t)
}

// RandString generate rand string with specified length
func RandString(length int) string {
	str := "0123456789abcdefghijklmnopqrstuvwxyz"
	data := []byte(str)
	var result []byte
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < length; i++ {
		result = append(result, data[r.Intn(len(data))])
	}
	return string(result)
}

func ContainsStr(slice []string, item string) bool {
	for _, e := range slice {
		if e == item {
			return true
		}
	}
	return false
}

// Stamp2str 时间戳转字符串
func Stamp2str(timestamp int64) string {
	if timestamp == 0 {
		return ""
	}
	return time.Unix(timestamp, 0).Format(consts.TimeLayout)
}

// Str2stamp 字符串转时间戳
func Str2stamp(str string) int64 {
	t, err := time.Parse(consts.TimeLayout, str)
	if err != nil {
		return 0
	}
	return t.Unix()
}
