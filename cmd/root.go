package cmd

import (
	"database/sql"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"menu_projection_system/internal/cache"
	"menu_projection_system/internal/projection"
	"menu_projection_system/internal/source"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "menuproj",
	Short:         "後台選單授權投影工具",
	Long:          "依casbin策略計算使用者可見的後台選單，供維運查驗授權結果。",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute : CLI進入點
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "menuproj.yaml", "設定檔路徑")
}

// buildSource : 依設定組裝讀取來源。
// 設定redis時權限項目走共用快取，設定mysql時策略改走直連casbin
func buildSource(cfg cliConfig) (source.Source, func(), error) {
	cleanup := func() {}

	var src source.Source = source.NewHTTPSource(cfg.BaseURL, nil)

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		src = source.WithItemCache(src, cache.NewRedisCache(rdb, cfg.RedisKey, cfg.CacheTTL))
		cleanup = func() { _ = rdb.Close() }
	}

	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cs, err := source.NewCasbinSource(db, "mysql", cfg.CasbinTable)
		if err != nil {
			_ = db.Close()
			cleanup()
			return nil, nil, err
		}
		src = source.WithPolicySource(src, cs)
		prev := cleanup
		cleanup = func() {
			_ = db.Close()
			prev()
		}
	}

	return src, cleanup, nil
}

// newSession : 讀設定並建立投影session
func newSession() (*projection.Session, source.Source, func(), error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}
	src, cleanup, err := buildSource(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	session := projection.NewSession(projection.Config{
		SuperUser:       cfg.SuperUser,
		RefreshDuration: cfg.RefreshDuration,
		FetchTimeout:    cfg.FetchTimeout,
	}, src)
	return session, src, cleanup, nil
}
