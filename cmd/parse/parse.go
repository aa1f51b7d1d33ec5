package parse

// parse子命令：读取本地文件或抓取页面，按页面类型提取后以JSON输出，可选写入MySQL

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dszqbsm/hoopstat/config"
	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/fetch"
	"github.com/dszqbsm/hoopstat/log"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/pagelib"
	"github.com/dszqbsm/hoopstat/proxy"
	"github.com/dszqbsm/hoopstat/record"
	"github.com/dszqbsm/hoopstat/sqlstorage"
	"github.com/dszqbsm/hoopstat/urls"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ParseCmd = &cobra.Command{
	Use:   "parse <kind>",
	Short: "extract records from a page.",
	Long:  "extract records from a basketball-reference page read from --file or fetched from --url, and print them as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
	},
}

type Flags struct {
	ConfigFile string
	File       string
	URL        string
	Backend    string
	Strict     bool
	Store      bool
}

var flags Flags

func init() {
	ParseCmd.Flags().StringVar(
		&flags.ConfigFile, "config", "config.yaml", "set config file")
	ParseCmd.Flags().StringVar(
		&flags.File, "file", "", "read page from a local HTML file")
	ParseCmd.Flags().StringVar(
		&flags.URL, "url", "", "fetch page from url, relative paths resolve against baseURL")
	ParseCmd.Flags().StringVar(
		&flags.Backend, "backend", "", "tree builder backend: goquery or xpath")
	ParseCmd.Flags().BoolVar(
		&flags.Strict, "strict", true, "fail on the first malformed row")
	ParseCmd.Flags().BoolVar(
		&flags.Store, "store", false, "save flattened rows to MySQL")
}

/*
输入上下文、输出目标、页面类型名和命令行参数，输出错误

非严格模式下行级提取错误只记录告警，已成功的部分照常输出和保存
*/
func Run(ctx context.Context, out io.Writer, kindName string, f Flags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(f.ConfigFile)
	if err != nil {
		return err
	}
	logger, closer, err := log.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := pagelib.Register(cfg.Schemas); err != nil {
		return err
	}
	kind, err := page.Store.Get(kindName)
	if err != nil {
		return err
	}

	body, source, err := load(ctx, cfg, f, logger)
	if err != nil {
		return err
	}

	opts := []page.Option{
		page.WithLogger(logger.Named(kind.Name)),
		page.WithStrict(f.Strict),
		page.WithBaseURL(cfg.BaseURL),
	}
	if f.Backend != "" {
		b, err := dom.ParseBackend(f.Backend)
		if err != nil {
			return err
		}
		opts = append(opts, page.WithBackend(b))
	}

	data, err := kind.Run(body, opts...)
	if err != nil {
		if f.Strict || !partial(err) {
			return err
		}
		logger.Warn("partial extraction", zap.String("kind", kind.Name), zap.Error(err))
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return err
	}

	if !f.Store {
		return nil
	}
	return store(cfg, kind, data, source, logger)
}

// 错误全部来自行或字段提取时，结果仍然可用
func partial(err error) bool {
	for _, e := range multierr.Errors(err) {
		var ee *record.ExtractError
		if !errors.As(e, &ee) {
			return false
		}
	}
	return true
}

func load(ctx context.Context, cfg *config.Config, f Flags, logger *zap.Logger) ([]byte, string, error) {
	switch {
	case f.File != "" && f.URL != "":
		return nil, "", errors.New("parse: --file and --url are mutually exclusive")
	case f.File != "":
		body, err := os.ReadFile(f.File)
		return body, f.File, err
	case f.URL != "":
		u, err := urls.Abs(cfg.BaseURL, f.URL)
		if err != nil {
			return nil, "", err
		}
		fetchOpts := []fetch.Option{
			fetch.WithLogger(logger.Named("fetch")),
			fetch.WithTimeout(cfg.Fetcher.Timeout),
			fetch.WithUserAgent(cfg.Fetcher.UserAgent),
		}
		if len(cfg.Fetcher.Proxy) > 0 {
			p, err := proxy.RoundRobinProxySwitcher(cfg.Fetcher.Proxy...)
			if err != nil {
				return nil, "", err
			}
			fetchOpts = append(fetchOpts, fetch.WithProxy(p))
		}
		body, err := fetch.New(fetchOpts...).Get(ctx, u)
		return body, u, err
	}
	return nil, "", errors.New("parse: one of --file or --url is required")
}

func store(cfg *config.Config, kind *page.Kind, data interface{}, source string, logger *zap.Logger) error {
	cells, err := pagelib.Cells(kind, data, source, time.Now())
	if err != nil {
		return err
	}
	s, err := sqlstorage.New(
		sqlstorage.WithSqlUrl(cfg.Storage.SqlURL),
		sqlstorage.WithLogger(logger.Named("sqlDB")),
		sqlstorage.WithBatchCount(cfg.Storage.BatchCount),
	)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	if err := s.Save(cells...); err != nil {
		return err
	}
	if err := s.Flush(); err != nil {
		return err
	}
	logger.Info("rows stored", zap.String("table", kind.Name), zap.Int("rows", len(cells)))
	return nil
}
