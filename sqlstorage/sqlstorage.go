package sqlstorage

// 将页面提取结果展开后的行分批写入MySQL，每种页面类型对应一张表，首次出现时建表

import (
	"fmt"

	"github.com/dszqbsm/hoopstat/sqldb"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// 一行待写入的数据，Values与Fields一一对应
type DataCell struct {
	Table  string
	Fields []string
	Values []string
	URL    string // 页面来源
	Time   string // 抓取时间
}

type Storage interface {
	Save(cells ...*DataCell) error
	Flush() error
}

type SqlStore struct {
	dataDocker []*DataCell
	db         sqldb.DBer
	Table      map[string]struct{} // 已创建的表名
	options
}

// SqlStore的构造函数，接受一系列配置选项，返回一个SqlStore实例
func New(opts ...Option) (*SqlStore, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	db, err := sqldb.New(
		sqldb.WithConnURL(options.sqlUrl),
		sqldb.WithLogger(options.logger),
	)
	if err != nil {
		return nil, err
	}
	return newStore(db, options), nil
}

func newStore(db sqldb.DBer, options options) *SqlStore {
	return &SqlStore{
		db:      db,
		Table:   make(map[string]struct{}),
		options: options,
	}
}

/*
输入若干数据单元，输出错误

表不存在时先建表；缓存达到批量数时先写入已缓存的数据，再缓存当前单元
*/
func (s *SqlStore) Save(dataCells ...*DataCell) error {
	for _, cell := range dataCells {
		if len(cell.Values) != len(cell.Fields) {
			return fmt.Errorf("sqlstorage: table %s: %d values for %d fields", cell.Table, len(cell.Values), len(cell.Fields))
		}
		if _, ok := s.Table[cell.Table]; !ok {
			err := s.db.CreateTable(sqldb.TableData{
				TableName:   cell.Table,
				ColumnNames: getFields(cell),
				AutoKey:     true,
			})
			if err != nil {
				s.logger.Error("create table failed", zap.String("table", cell.Table), zap.Error(err))
				return err
			}
			s.Table[cell.Table] = struct{}{}
		}
		if len(s.dataDocker) >= s.BatchCount {
			if err := s.Flush(); err != nil {
				s.logger.Error("insert data failed", zap.Error(err))
				return err
			}
		}
		s.dataDocker = append(s.dataDocker, cell)
	}
	return nil
}

// 按表分组批量插入缓存的数据，无论成败都清空缓存
func (s *SqlStore) Flush() error {
	if len(s.dataDocker) == 0 {
		return nil
	}
	defer func() {
		s.dataDocker = nil
	}()

	var order []string
	groups := make(map[string][]*DataCell)
	for _, cell := range s.dataDocker {
		if _, ok := groups[cell.Table]; !ok {
			order = append(order, cell.Table)
		}
		groups[cell.Table] = append(groups[cell.Table], cell)
	}

	var errs error
	for _, table := range order {
		cells := groups[table]
		args := make([]interface{}, 0, len(cells)*(len(cells[0].Fields)+2))
		for _, cell := range cells {
			for _, v := range cell.Values {
				args = append(args, v)
			}
			args = append(args, cell.URL, cell.Time)
		}
		err := s.db.Insert(sqldb.TableData{
			TableName:   table,
			ColumnNames: getFields(cells[0]),
			Args:        args,
			DataCount:   len(cells),
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sqlstorage: insert %s: %w", table, err))
			continue
		}
		s.logger.Debug("rows inserted", zap.String("table", table), zap.Int("rows", len(cells)))
	}
	return errs
}

// 字段列加上url和time两列
func getFields(cell *DataCell) []sqldb.Field {
	columnNames := make([]sqldb.Field, 0, len(cell.Fields)+2)
	for _, field := range cell.Fields {
		columnNames = append(columnNames, sqldb.Field{
			Title: field,
			Type:  "MEDIUMTEXT",
		})
	}
	columnNames = append(columnNames,
		sqldb.Field{Title: "url", Type: "VARCHAR(255)"},
		sqldb.Field{Title: "time", Type: "VARCHAR(255)"},
	)
	return columnNames
}
