package config

// 命令行工具的配置：YAML文件提供基础值，.env与HOOPSTAT_*环境变量覆盖文件中的值

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dszqbsm/hoopstat/urls"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const envPrefix = "HOOPSTAT_"

type Config struct {
	LogLevel string   `yaml:"logLevel"`
	LogFile  string   `yaml:"logFile"` // 为空时输出到标准错误
	BaseURL  string   `yaml:"baseURL"`
	Fetcher  Fetcher  `yaml:"fetcher"`
	Storage  Storage  `yaml:"storage"`
	Schemas  []Schema `yaml:"schemas"`
}

type Fetcher struct {
	Timeout   time.Duration `yaml:"timeout"`
	Proxy     []string      `yaml:"proxy"`
	UserAgent string        `yaml:"userAgent"`
}

type Storage struct {
	SqlURL     string `yaml:"sqlURL"`
	BatchCount int    `yaml:"batchCount"`
}

// 由配置文件定义的页面类型
type Schema struct {
	Name      string   `yaml:"name"`
	Container string   `yaml:"container"`
	Row       string   `yaml:"row"`
	Dividers  []string `yaml:"dividers"` // 行class含这些标记时视为分隔行，为空时使用默认分类
	Backends  []string `yaml:"backends"`
	Fields    []Field  `yaml:"fields"`
}

type Field struct {
	Name     string `yaml:"name"`
	Selector string `yaml:"selector"`
	Attr     string `yaml:"attr"`
	Rule     string `yaml:"rule"` // text、lower、int、date:<layout>、time
	Optional bool   `yaml:"optional"`
	Script   string `yaml:"script"` // JS表达式，value为转换后的字符串
}

func Default() *Config {
	return &Config{
		LogLevel: "INFO",
		BaseURL:  urls.BaseURL,
		Fetcher: Fetcher{
			Timeout: 10 * time.Second,
		},
		Storage: Storage{
			BatchCount: 100,
		},
	}
}

/*
输入配置文件路径，输出配置和错误

路径为空或文件不存在时使用默认值；随后加载当前目录下的.env（不存在则忽略），再用HOOPSTAT_*环境变量覆盖，最后校验
*/
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(content, cfg); err != nil {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load(".env")

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(envPrefix + "LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := lookup(envPrefix + "BASE_URL"); ok {
		c.BaseURL = v
	}
	if v, ok := lookup(envPrefix + "USER_AGENT"); ok {
		c.Fetcher.UserAgent = v
	}
	if v, ok := lookup(envPrefix + "FETCH_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sFETCH_TIMEOUT: %w", envPrefix, err)
		}
		c.Fetcher.Timeout = d
	}
	if v, ok := lookup(envPrefix + "PROXY"); ok {
		c.Fetcher.Proxy = splitList(v)
	}
	if v, ok := lookup(envPrefix + "SQL_URL"); ok {
		c.Storage.SqlURL = v
	}
	if v, ok := lookup(envPrefix + "BATCH_COUNT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sBATCH_COUNT: %w", envPrefix, err)
		}
		c.Storage.BatchCount = n
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// 校验所有问题并一次性返回
func (c *Config) Validate() error {
	var err error
	if c.Storage.BatchCount <= 0 {
		err = multierr.Append(err, fmt.Errorf("config: storage.batchCount must be positive, got %d", c.Storage.BatchCount))
	}
	if c.Fetcher.Timeout < 0 {
		err = multierr.Append(err, fmt.Errorf("config: fetcher.timeout must not be negative, got %s", c.Fetcher.Timeout))
	}
	seen := make(map[string]bool, len(c.Schemas))
	for i, s := range c.Schemas {
		switch {
		case s.Name == "":
			err = multierr.Append(err, fmt.Errorf("config: schemas[%d]: missing name", i))
		case seen[s.Name]:
			err = multierr.Append(err, fmt.Errorf("config: schemas[%d]: duplicate name %q", i, s.Name))
		}
		seen[s.Name] = true
		if s.Container == "" || s.Row == "" {
			err = multierr.Append(err, fmt.Errorf("config: schema %q: container and row are required", s.Name))
		}
		if len(s.Fields) == 0 {
			err = multierr.Append(err, fmt.Errorf("config: schema %q: no fields", s.Name))
		}
	}
	return err
}
