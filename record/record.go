package record

// 记录组装：按页面类型的字段表从一行中逐个取值、转换，得到有序的记录

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dszqbsm/hoopstat/coerce"
	"github.com/dszqbsm/hoopstat/dom"
	"go.uber.org/multierr"
)

const (
	ReasonSelector = "td[data-stat=reason]"
	DidNotPlayKey  = "did_not_play"
)

var (
	ErrNoMatch = errors.New("selector matched nothing")
	ErrNoAttr  = errors.New("attribute not present")
)

// 一个字段的取值方式
type Field struct {
	Name     string
	Selector string // 相对于行节点，为空时取行节点本身
	Attr     string // 非空时取属性值而不是文本
	Rule     Rule   // 为nil时等同Text
	Optional bool   // 选择器无匹配或属性不存在时得到缺失值，而不是结构错误
}

// 字段顺序即记录中键的顺序，第一个字段同时作为未出场记录的主键
type Schema struct {
	Name   string
	Fields []Field
}

func (s Schema) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// 定位到出错的页面、行、字段和选择器
type ExtractError struct {
	Page     string
	Schema   string
	Row      int // 容器级错误为-1
	Field    string
	Selector string
	Err      error
}

func (e *ExtractError) Error() string {
	var b strings.Builder
	b.WriteString("extract")
	if e.Page != "" {
		fmt.Fprintf(&b, " page=%s", e.Page)
	}
	if e.Schema != "" {
		fmt.Fprintf(&b, " schema=%s", e.Schema)
	}
	if e.Row >= 0 {
		fmt.Fprintf(&b, " row=%d", e.Row)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field=%s", e.Field)
	}
	if e.Selector != "" {
		fmt.Fprintf(&b, " selector=%q", e.Selector)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// 有序记录，键顺序与Schema字段顺序一致
type Record struct {
	keys   []string
	values map[string]Value
	row    int
}

// 记录来自扫描结果中的第几行，用于定位组装之后的转换错误
func (r Record) Row() int {
	return r.row
}

func (r *Record) Set(key string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

func (r Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r Record) Len() int {
	return len(r.keys)
}

func (r Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

func (r Record) String(key string) string {
	return r.values[key].String()
}

// 字段不存在或不是整数时返回coerce.MissingInt
func (r Record) Int(key string) int {
	v, ok := r.values[key]
	if !ok || v.Kind != KindInt {
		return coerce.MissingInt
	}
	return v.Int
}

func (r Record) Date(key string) time.Time {
	return r.values[key].Date
}

func (r Record) Time(key string) coerce.TimeOfDay {
	return r.values[key].Time
}

func (r Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.keys))
	for _, k := range r.keys {
		m[k] = r.values[k].Interface()
	}
	return m
}

// 按字段顺序输出JSON对象
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

/*
输入一行和字段表，输出一条记录和错误

未出场行只包含主键字段和did_not_play两个键，其余字段不取值也不填默认值；
普通行按字段顺序逐个取值，必填字段的选择器无匹配时返回ExtractError，不产出半成品记录
*/
func Assemble(row Row, schema Schema) (Record, error) {
	rec := Record{row: row.Index}
	if len(schema.Fields) == 0 {
		return rec, &ExtractError{Schema: schema.Name, Row: row.Index, Err: errors.New("empty schema")}
	}
	if row.Kind == RowDidNotPlay {
		key := schema.Fields[0]
		v, err := extract(row.Node, key)
		if err != nil {
			return Record{}, &ExtractError{Schema: schema.Name, Row: row.Index, Field: key.Name, Selector: key.Selector, Err: err}
		}
		rec.Set(key.Name, v)
		reason, err := extract(row.Node, Field{Name: DidNotPlayKey, Selector: ReasonSelector})
		if err != nil {
			return Record{}, &ExtractError{Schema: schema.Name, Row: row.Index, Field: DidNotPlayKey, Selector: ReasonSelector, Err: err}
		}
		rec.Set(DidNotPlayKey, reason)
		return rec, nil
	}
	for _, f := range schema.Fields {
		v, err := extract(row.Node, f)
		if err != nil {
			return Record{}, &ExtractError{Schema: schema.Name, Row: row.Index, Field: f.Name, Selector: f.Selector, Err: err}
		}
		rec.Set(f.Name, v)
	}
	return rec, nil
}

/*
输入若干行、字段表和是否严格模式，输出记录列表和错误

严格模式遇到第一个失败的行立即返回；非严格模式跳过失败的行，用multierr汇总所有错误，同时返回成功的记录，由调用方决定是否容忍
*/
func AssembleAll(rows []Row, schema Schema, strict bool) ([]Record, error) {
	var errs error
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if row.Kind == RowDivider {
			continue
		}
		rec, err := Assemble(row, schema)
		if err != nil {
			if strict {
				return nil, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, rec)
	}
	return out, errs
}

func extract(n dom.Node, f Field) (Value, error) {
	target := n
	if f.Selector != "" {
		found, err := n.Find(f.Selector)
		if err != nil {
			return Value{}, err
		}
		if len(found) == 0 {
			if f.Optional {
				return Missing(), nil
			}
			return Value{}, ErrNoMatch
		}
		target = found[0]
	}
	text := target.Text()
	if f.Attr != "" {
		v, ok := target.Attr(f.Attr)
		if !ok {
			if f.Optional {
				return Missing(), nil
			}
			return Value{}, ErrNoAttr
		}
		text = v
	}
	rule := f.Rule
	if rule == nil {
		rule = Text
	}
	return rule(text)
}
