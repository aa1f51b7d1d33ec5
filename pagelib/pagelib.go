package pagelib

// 注册所有内置页面类型，并把提取结果转换为可写入数据库的数据单元

import (
	"fmt"
	"time"

	"github.com/dszqbsm/hoopstat/config"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/parse/boxscore"
	"github.com/dszqbsm/hoopstat/parse/custom"
	"github.com/dszqbsm/hoopstat/parse/leagues"
	"github.com/dszqbsm/hoopstat/parse/player"
	"github.com/dszqbsm/hoopstat/parse/playerdir"
	"github.com/dszqbsm/hoopstat/parse/schedule"
	"github.com/dszqbsm/hoopstat/parse/summary"
	"github.com/dszqbsm/hoopstat/parse/teams"
	"github.com/dszqbsm/hoopstat/sqlstorage"
)

const timeLayout = "2006-01-02 15:04:05"

func init() {
	page.Store.Add(teams.Kind)
	page.Store.Add(leagues.Kind)
	page.Store.Add(summary.Kind)
	page.Store.Add(schedule.Kind)
	page.Store.Add(boxscore.Kind)
	page.Store.Add(playerdir.Kind)
	page.Store.Add(player.Kind)
}

// 注册配置文件中定义的页面类型，名称不能与已注册的类型重复
func Register(schemas []config.Schema) error {
	for _, s := range schemas {
		if _, err := page.Store.Get(s.Name); err == nil {
			return fmt.Errorf("pagelib: page kind %q already registered", s.Name)
		}
		k, err := custom.New(s)
		if err != nil {
			return fmt.Errorf("pagelib: %w", err)
		}
		page.Store.Add(k)
	}
	return nil
}

/*
输入页面类型、提取结果、页面地址和抓取时间，输出数据单元列表和错误

每个展开后的行对应一个数据单元，表名为页面类型名，列为页面类型的字段
*/
func Cells(kind *page.Kind, data interface{}, url string, at time.Time) ([]*sqlstorage.DataCell, error) {
	rows, err := kind.Flatten(data)
	if err != nil {
		return nil, err
	}
	stamp := at.Format(timeLayout)
	cells := make([]*sqlstorage.DataCell, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(kind.Fields) {
			return nil, fmt.Errorf("pagelib: %s row %d has %d values for %d fields", kind.Name, i, len(row), len(kind.Fields))
		}
		cells = append(cells, &sqlstorage.DataCell{
			Table:  kind.Name,
			Fields: kind.Fields,
			Values: row,
			URL:    url,
			Time:   stamp,
		})
	}
	return cells, nil
}
