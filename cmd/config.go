package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// cliConfig : CLI層設定，來源優先序為 環境變數 > 設定檔 > 預設值
type cliConfig struct {
	BaseURL         string
	SuperUser       string
	RefreshDuration time.Duration
	FetchTimeout    time.Duration

	RedisAddr string
	RedisKey  string
	CacheTTL  time.Duration

	MySQLDSN    string
	CasbinTable string
}

// fileConfig : YAML設定檔的形狀，時間欄位為duration字串
type fileConfig struct {
	BaseURL         string `yaml:"base_url"`
	SuperUser       string `yaml:"super_user"`
	RefreshDuration string `yaml:"refresh_duration"`
	FetchTimeout    string `yaml:"fetch_timeout"`

	Redis struct {
		Addr string `yaml:"addr"`
		Key  string `yaml:"key"`
		TTL  string `yaml:"ttl"`
	} `yaml:"redis"`

	MySQL struct {
		DSN         string `yaml:"dsn"`
		CasbinTable string `yaml:"casbin_table"`
	} `yaml:"mysql"`
}

// loadConfig : 讀取.env、設定檔與環境變數。
// 未指定的設定檔不存在時不視為錯誤
func loadConfig(path string) (cliConfig, error) {
	_ = godotenv.Load(".env")

	cfg := cliConfig{
		RefreshDuration: time.Minute,
		FetchTimeout:    10 * time.Second,
		CacheTTL:        time.Minute,
		CasbinTable:     "casbin_rule",
	}

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cliConfig{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cliConfig{}, err
	}

	if cfg.BaseURL == "" {
		return cliConfig{}, errors.New("缺少後台API位址（base_url 或 MENUPROJ_BASE_URL）")
	}
	return cfg, nil
}

func applyFile(cfg *cliConfig, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("設定檔解析失敗 %s: %w", path, err)
	}

	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.SuperUser, fc.SuperUser)
	setString(&cfg.RedisAddr, fc.Redis.Addr)
	setString(&cfg.RedisKey, fc.Redis.Key)
	setString(&cfg.MySQLDSN, fc.MySQL.DSN)
	setString(&cfg.CasbinTable, fc.MySQL.CasbinTable)

	if err := setDuration(&cfg.RefreshDuration, fc.RefreshDuration, "refresh_duration"); err != nil {
		return err
	}
	if err := setDuration(&cfg.FetchTimeout, fc.FetchTimeout, "fetch_timeout"); err != nil {
		return err
	}
	return setDuration(&cfg.CacheTTL, fc.Redis.TTL, "redis.ttl")
}

func applyEnv(cfg *cliConfig) error {
	setString(&cfg.BaseURL, os.Getenv("MENUPROJ_BASE_URL"))
	setString(&cfg.SuperUser, os.Getenv("MENUPROJ_SUPER_USER"))
	setString(&cfg.RedisAddr, os.Getenv("MENUPROJ_REDIS_ADDR"))
	setString(&cfg.RedisKey, os.Getenv("MENUPROJ_REDIS_KEY"))
	setString(&cfg.MySQLDSN, os.Getenv("MENUPROJ_MYSQL_DSN"))
	setString(&cfg.CasbinTable, os.Getenv("MENUPROJ_CASBIN_TABLE"))

	if err := setDuration(&cfg.RefreshDuration, os.Getenv("MENUPROJ_REFRESH_DURATION"), "MENUPROJ_REFRESH_DURATION"); err != nil {
		return err
	}
	if err := setDuration(&cfg.FetchTimeout, os.Getenv("MENUPROJ_FETCH_TIMEOUT"), "MENUPROJ_FETCH_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&cfg.CacheTTL, os.Getenv("MENUPROJ_CACHE_TTL"), "MENUPROJ_CACHE_TTL")
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string, name string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s 不是合法的duration: %w", name, err)
	}
	*dst = d
	return nil
}
