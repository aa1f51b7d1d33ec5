package coerce

// 将页面单元格中的原始文本转换为带类型的值：整数、日期、时间、体重以及赛季标签

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// 比赛尚未进行时比分、上座人数等单元格为空，统一用该值表示
const MissingInt = -1

const (
	GameDateLayout = "Mon, Jan 2, 2006" // Tue, Oct 16, 2018
	BirthLayout    = "2006-01-02"       // data-birth属性
	clockLayout    = "3:04PM"

	kgToLb = 2.20462
)

// 文本存在但格式不符合预期
type FormatError struct {
	Kind string // date、time、season等
	Text string // 原始文本
	Err  error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("coerce %s: malformed text %q: %v", e.Kind, e.Text, e.Err)
	}
	return fmt.Sprintf("coerce %s: malformed text %q", e.Kind, e.Text)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

/*
输入一段文本，输出一个整数

去除首尾空白和千位分隔符后解析整数，空串或非数字内容返回MissingInt，该情况表示事件尚未发生而不是错误
*/
func ToInteger(text string) int {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	n, err := strconv.Atoi(text)
	if err != nil {
		return MissingInt
	}
	return n
}

/*
输入一段文本和Go时间布局，输出日期和错误

日期缺失没有合理的默认值，因此格式不符时返回FormatError交给调用方处理
*/
func ToDate(text, layout string) (time.Time, error) {
	t, err := time.Parse(layout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, &FormatError{Kind: "date", Text: text, Err: err}
	}
	return t, nil
}

// 一天中的时刻，24小时制
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

/*
输入网站使用的开赛时间文本（如8:00p、11:30a），输出24小时制时刻和错误

末尾的a/p（或am/pm）先转换为AM/PM再按3:04PM解析
*/
func ToTime(text string) (TimeOfDay, error) {
	s := strings.ToLower(strings.Join(strings.Fields(text), ""))
	s = strings.TrimSuffix(s, "m")
	switch {
	case strings.HasSuffix(s, "a"):
		s = strings.TrimSuffix(s, "a") + "AM"
	case strings.HasSuffix(s, "p"):
		s = strings.TrimSuffix(s, "p") + "PM"
	default:
		return TimeOfDay{}, &FormatError{Kind: "time", Text: text}
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return TimeOfDay{}, &FormatError{Kind: "time", Text: text, Err: err}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

var weightRe = regexp.MustCompile(`^(\d+)\s*(lb|kg)`)

/*
输入体重文本和日志器，输出以磅为单位的体重以及是否解析成功

单位为lb时原样返回，kg时乘以2.20462并四舍五入；无法匹配时记录告警并返回false，下游把体重视为缺失
*/
func ToWeight(text string, logger *zap.Logger) (int, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := weightRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		logger.Warn("weight or unit of measure not found", zap.String("text", text))
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		logger.Warn("weight out of range", zap.String("text", text), zap.Error(err))
		return 0, false
	}
	if m[2] == "kg" {
		return int(math.Round(float64(n) * kgToLb)), true
	}
	return n, true
}

var seasonRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

/*
输入赛季标签（如2015-16），输出赛季开始年和结束年的1月1日

结束年始终为开始年+1，两位数后缀只校验形状不参与计算，因此1999-00得到2000年
*/
func SeasonYears(label string) (start, end time.Time, err error) {
	m := seasonRe.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return time.Time{}, time.Time{}, &FormatError{Kind: "season", Text: label}
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, time.Time{}, &FormatError{Kind: "season", Text: label, Err: err}
	}
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}
