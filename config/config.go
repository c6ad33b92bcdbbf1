package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"heattreat/calculator"
	"heattreat/steel_type"
)

const (
	DefaultPath = "conf/config.ini"
	DefaultAddr = ":9000"

	EnvConfig = "HT_CONFIG"
	EnvAddr   = "HT_ADDR"
)

type Config struct {
	Path    string
	Steel   *steel_type.Steel
	Policy  calculator.Policy
	Server  ServerCfg
	Furnace FurnaceCfg
	Log     LogCfg
}

type ServerCfg struct {
	Addr      string
	RateLimit float64 // 每秒请求数，<= 0 不限流
	RateBurst int
}

// 加热进度推送，纯展示用
type FurnaceCfg struct {
	ProgressStep int
	Tick         time.Duration
}

type LogCfg struct {
	Level  string
	Format string // text | json
}

// Load 读取配置。path 为空时依次使用环境变量 HT_CONFIG 和 DefaultPath，
// 文件不存在时使用默认配置。
func Load(path string) (*Config, error) {
	// .env 可选
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultPath
	}

	file, err := ini.Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		log.WithField("path", path).Warn("配置文件不存在，使用默认配置")
		file = ini.Empty()
	}

	cfg, err := loadCfg(file)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.Path = path
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}
	return cfg, nil
}

// Parse 从内存中的 ini 内容读取配置，不读环境变量
func Parse(data []byte) (*Config, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return loadCfg(file)
}

func Default() *Config {
	cfg, err := loadCfg(ini.Empty())
	if err != nil {
		// 默认值一定合法
		panic(err)
	}
	return cfg
}

func loadCfg(file *ini.File) (*Config, error) {
	steel, err := steel_type.Load(file.Section("material"))
	if err != nil {
		return nil, err
	}
	policy, err := calculator.ParsePolicy(file.Section("calculator").Key("policy").MustString(string(calculator.PolicyStrict)))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Steel:  steel,
		Policy: policy,
		Server: ServerCfg{
			Addr:      file.Section("server").Key("addr").MustString(DefaultAddr),
			RateLimit: file.Section("server").Key("rate_limit").MustFloat64(5),
			RateBurst: file.Section("server").Key("rate_burst").MustInt(10),
		},
		Furnace: FurnaceCfg{
			ProgressStep: file.Section("furnace").Key("progress_step").MustInt(10),
			Tick:         file.Section("furnace").Key("tick").MustDuration(0),
		},
		Log: LogCfg{
			Level:  file.Section("log").Key("level").MustString("info"),
			Format: file.Section("log").Key("format").MustString("text"),
		},
	}
	if cfg.Furnace.ProgressStep <= 0 || cfg.Furnace.ProgressStep > 100 {
		return nil, fmt.Errorf("furnace progress_step must be in 1..100, got %d", cfg.Furnace.ProgressStep)
	}
	if cfg.Furnace.Tick < 0 {
		return nil, fmt.Errorf("furnace tick must not be negative, got %s", cfg.Furnace.Tick)
	}
	return cfg, nil
}

// SetupLogger 按配置设置 logrus 的级别和格式
func SetupLogger(c LogCfg) error {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	switch c.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.Format)
	}
	return nil
}
