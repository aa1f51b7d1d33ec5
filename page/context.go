package page

import (
	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/ident"
	"github.com/dszqbsm/hoopstat/record"
	"github.com/dszqbsm/hoopstat/urls"
	"go.uber.org/zap"
)

// 一次提取过程可用的全部依赖，由Parser在第一次取数时构造
type Context struct {
	Page    string
	Doc     dom.Document
	Logger  *zap.Logger
	Strict  bool
	BaseURL string
	Ident   *ident.Extractor
}

func (c *Context) Abs(href string) (string, error) {
	return urls.Abs(c.BaseURL, href)
}

/*
输入容器选择器、行选择器、分类函数和字段表，输出记录列表和错误

先按容器取行、去掉分隔行，再按当前严格模式组装记录
*/
func (c *Context) Records(container, row string, classify record.Classifier, schema record.Schema) ([]record.Record, error) {
	rows, err := record.Rows(c.Doc, container, row, classify)
	if err != nil {
		return nil, err
	}
	recs, err := record.AssembleAll(rows, schema, c.Strict)
	c.Logger.Debug("rows assembled",
		zap.String("schema", schema.Name),
		zap.String("container", container),
		zap.Int("rows", len(rows)),
		zap.Int("records", len(recs)),
	)
	return recs, err
}

// 组装之后的转换失败，补上行号和字段
func (c *Context) RecordError(schema string, rec record.Record, field string, err error) *record.ExtractError {
	return &record.ExtractError{Page: c.Page, Schema: schema, Row: rec.Row(), Field: field, Err: err}
}
