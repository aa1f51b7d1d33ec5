package record

import (
	"strings"

	"github.com/dszqbsm/hoopstat/coerce"
	"github.com/dszqbsm/hoopstat/urls"
	"go.uber.org/zap"
)

// 把单元格的原始文本转换为Value；返回的错误属于格式错误
type Rule func(text string) (Value, error)

// 去除首尾空白后原样保留
func Text(text string) (Value, error) {
	return StringValue(strings.TrimSpace(text)), nil
}

func Lower(text string) (Value, error) {
	return StringValue(strings.ToLower(strings.TrimSpace(text))), nil
}

// 空串和非数字得到coerce.MissingInt，不会失败
func Integer(text string) (Value, error) {
	return IntValue(coerce.ToInteger(text)), nil
}

func Date(layout string) Rule {
	return func(text string) (Value, error) {
		t, err := coerce.ToDate(text, layout)
		if err != nil {
			return Value{}, err
		}
		return DateValue(t), nil
	}
}

func Clock(text string) (Value, error) {
	t, err := coerce.ToTime(text)
	if err != nil {
		return Value{}, err
	}
	return TimeValue(t), nil
}

// 体重无法解析时得到缺失值并由coerce记录告警
func Weight(logger *zap.Logger) Rule {
	return func(text string) (Value, error) {
		w, ok := coerce.ToWeight(text, logger)
		if !ok {
			return Missing(), nil
		}
		return IntValue(w), nil
	}
}

// 相对链接转换为绝对地址，空链接保持为空串
func AbsURL(base string) Rule {
	return func(text string) (Value, error) {
		text = strings.TrimSpace(text)
		if text == "" {
			return StringValue(""), nil
		}
		u, err := urls.Abs(base, text)
		if err != nil {
			return Value{}, err
		}
		return StringValue(u), nil
	}
}
