package record

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/dszqbsm/hoopstat/coerce"
)

type Kind int

const (
	KindMissing Kind = iota
	KindString
	KindInt
	KindDate
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	default:
		return "missing"
	}
}

// 单元格经过转换后的值，Kind决定哪个字段有效
type Value struct {
	Kind Kind
	Str  string
	Int  int
	Date time.Time
	Time coerce.TimeOfDay
}

func StringValue(s string) Value         { return Value{Kind: KindString, Str: s} }
func IntValue(n int) Value               { return Value{Kind: KindInt, Int: n} }
func DateValue(t time.Time) Value        { return Value{Kind: KindDate, Date: t} }
func TimeValue(t coerce.TimeOfDay) Value { return Value{Kind: KindTime, Time: t} }
func Missing() Value                     { return Value{} }

// 统一的文本形式，写入数据库时使用；日期为2006-01-02，缺失值为空串
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindDate:
		return v.Date.Format(coerce.BirthLayout)
	case KindTime:
		return v.Time.String()
	default:
		return ""
	}
}

// 缺失值输出为nil
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindDate:
		return v.Date.Format(coerce.BirthLayout)
	case KindTime:
		return v.Time.String()
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}
