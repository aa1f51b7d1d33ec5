package custom

// 由配置文件定义的页面类型：容器、行选择器和字段表都来自YAML，字段可附带一段JS表达式对值再加工

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dszqbsm/hoopstat/coerce"
	"github.com/dszqbsm/hoopstat/config"
	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
	"github.com/robertkrimen/otto"
)

const datePrefix = "date:"

/*
输入一个配置中的页面定义，输出可注册的页面类型和错误

后端为空时两种后端都支持，goquery为默认；规则名或脚本语法错误在此处返回，而不是等到提取时
*/
func New(s config.Schema) (*page.Kind, error) {
	backends, err := parseBackends(s.Backends)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}
	schema := record.Schema{Name: s.Name}
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		rule, err := ruleByName(f.Rule)
		if err != nil {
			return nil, fmt.Errorf("schema %s field %s: %w", s.Name, f.Name, err)
		}
		if f.Script != "" {
			rule, err = withScript(rule, f.Script)
			if err != nil {
				return nil, fmt.Errorf("schema %s field %s: %w", s.Name, f.Name, err)
			}
		}
		schema.Fields = append(schema.Fields, record.Field{
			Name:     f.Name,
			Selector: f.Selector,
			Attr:     f.Attr,
			Rule:     rule,
			Optional: f.Optional,
		})
		names = append(names, f.Name)
	}

	container, row := s.Container, s.Row
	var classify record.Classifier = record.DefaultClassifier
	if len(s.Dividers) > 0 {
		classify = record.MarkerClassifier(s.Dividers...)
	}
	parse := func(ctx *page.Context) ([]record.Record, error) {
		return ctx.Records(container, row, classify, schema)
	}
	flatten := func(recs []record.Record) [][]string {
		rows := make([][]string, 0, len(recs))
		for _, r := range recs {
			line := make([]string, 0, len(names))
			for _, n := range names {
				line = append(line, r.String(n))
			}
			rows = append(rows, line)
		}
		return rows
	}
	return page.NewKind(s.Name, backends, names, parse, flatten), nil
}

func parseBackends(names []string) ([]dom.Backend, error) {
	if len(names) == 0 {
		return []dom.Backend{dom.BackendGoquery, dom.BackendXPath}, nil
	}
	out := make([]dom.Backend, 0, len(names))
	for _, n := range names {
		b, err := dom.ParseBackend(n)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func ruleByName(name string) (record.Rule, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "", name == "text":
		return record.Text, nil
	case name == "lower":
		return record.Lower, nil
	case name == "int":
		return record.Integer, nil
	case name == "time":
		return record.Clock, nil
	case name == "date":
		return record.Date(coerce.GameDateLayout), nil
	case strings.HasPrefix(name, datePrefix):
		return record.Date(strings.TrimPrefix(name, datePrefix)), nil
	}
	return nil, fmt.Errorf("unknown rule %q", name)
}

/*
输入基础规则和JS表达式，输出组合后的规则和错误

每次求值都新建一个虚拟机，value绑定为基础规则转换后的文本；缺失值不经过脚本
*/
func withScript(base record.Rule, src string) (record.Rule, error) {
	script, err := otto.New().Compile("", src)
	if err != nil {
		return nil, fmt.Errorf("compile script: %w", err)
	}
	return func(text string) (record.Value, error) {
		v, err := base(text)
		if err != nil || v.Kind == record.KindMissing {
			return v, err
		}
		vm := otto.New()
		if err := vm.Set("value", v.String()); err != nil {
			return record.Value{}, err
		}
		out, err := vm.Run(script)
		if err != nil {
			return record.Value{}, fmt.Errorf("run script: %w", err)
		}
		return exportValue(out)
	}, nil
}

func exportValue(out otto.Value) (record.Value, error) {
	if out.IsUndefined() || out.IsNull() {
		return record.Missing(), nil
	}
	e, err := out.Export()
	if err != nil {
		return record.Value{}, err
	}
	switch x := e.(type) {
	case string:
		return record.StringValue(x), nil
	case int:
		return record.IntValue(x), nil
	case int64:
		return record.IntValue(int(x)), nil
	case int32:
		return record.IntValue(int(x)), nil
	case uint32:
		return record.IntValue(int(x)), nil
	case float64:
		if x == float64(int(x)) {
			return record.IntValue(int(x)), nil
		}
		return record.StringValue(strconv.FormatFloat(x, 'f', -1, 64)), nil
	case bool:
		return record.StringValue(strconv.FormatBool(x)), nil
	}
	return record.Value{}, fmt.Errorf("script returned unsupported %T", e)
}
