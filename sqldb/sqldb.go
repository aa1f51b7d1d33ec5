package sqldb

// 与MySQL数据库交互：建表和批量插入

import (
	"database/sql"
	"errors"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var ErrNoColumn = errors.New("sqldb: column can not be empty")

// 为数据库操作统一了规范，包括创建表、插入数据
type DBer interface {
	CreateTable(t TableData) error
	Insert(t TableData) error
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// sql数据库实例
type Sqldb struct {
	options
	db execer
}

// 打开一个MySQL数据库连接，设置最大连接数和最大空闲连接数，通过ping方法测试连接是否正常
func (d *Sqldb) OpenDB() error {
	db, err := sql.Open("mysql", d.sqlUrl)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(d.maxOpenConns)
	db.SetMaxIdleConns(d.maxOpenConns)
	if err = db.Ping(); err != nil {
		db.Close()
		return err
	}
	d.db = db
	return nil
}

func (d *Sqldb) CreateTable(t TableData) error {
	stmt, err := createTableSQL(t)
	if err != nil {
		return err
	}
	d.logger.Debug("create table", zap.String("sql", stmt))
	_, err = d.db.Exec(stmt)
	return err
}

func (d *Sqldb) Insert(t TableData) error {
	stmt, err := insertSQL(t)
	if err != nil {
		return err
	}
	d.logger.Debug("insert table", zap.String("sql", stmt), zap.Int("rows", t.DataCount))
	_, err = d.db.Exec(stmt, t.Args...)
	return err
}

// 表名和列名来自页面类型和字段名，统一用反引号包裹，避免与table、time等保留字冲突
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func createTableSQL(t TableData) (string, error) {
	if len(t.ColumnNames) == 0 {
		return "", ErrNoColumn
	}
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS " + quoteIdent(t.TableName) + " (")
	if t.AutoKey {
		b.WriteString("`id` INT(12) NOT NULL PRIMARY KEY AUTO_INCREMENT,")
	}
	for i, c := range t.ColumnNames {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(quoteIdent(c.Title) + " " + c.Type)
	}
	b.WriteString(") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;")
	return b.String(), nil
}

/*
输入表数据，输出插入语句和错误

形如INSERT INTO `t`(`a`,`b`) VALUES (?,?),(?,?);，每行的问号数等于列数，参数个数必须等于列数乘以行数
*/
func insertSQL(t TableData) (string, error) {
	if len(t.ColumnNames) == 0 {
		return "", ErrNoColumn
	}
	if t.DataCount <= 0 || len(t.Args) != len(t.ColumnNames)*t.DataCount {
		return "", errors.New("sqldb: argument count does not match columns")
	}
	cols := make([]string, 0, len(t.ColumnNames))
	for _, c := range t.ColumnNames {
		cols = append(cols, quoteIdent(c.Title))
	}
	blank := ",(" + strings.Repeat(",?", len(t.ColumnNames))[1:] + ")"
	return "INSERT INTO " + quoteIdent(t.TableName) + "(" + strings.Join(cols, ",") + ") VALUES " +
		strings.Repeat(blank, t.DataCount)[1:] + ";", nil
}

// 表示数据库表中的一个字段，包含字段名和字段类型
type Field struct {
	Title string
	Type  string
}

// 表示要操作的数据库表的数据
type TableData struct {
	TableName   string
	ColumnNames []Field       // 标题字段
	Args        []interface{} // 数据
	DataCount   int           // 插入数据的数量
	AutoKey     bool
}

// 创建一个新的Sqldb实例，并根据传入的选项进行配置
func New(opts ...Option) (*Sqldb, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	d := &Sqldb{}
	d.options = options
	if err := d.OpenDB(); err != nil {
		return nil, err
	}
	return d, nil
}
