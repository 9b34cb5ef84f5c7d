package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"drifter-tracker/internal/api"
	"drifter-tracker/internal/config"
	"drifter-tracker/internal/db"
	"drifter-tracker/internal/logger"
	"drifter-tracker/internal/sde"
)

var version = "dev"

// Global flags shared by every command.
var (
	configPath string
	dataDir    string
	dbPath     string
	logLevel   string
)

func main() {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	root := &cobra.Command{
		Use:           "drifter",
		Short:         "Drifter wormhole tracker and hybrid route planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", envOrDefault("DRIFTER_CONFIG", "drifter.yaml"), "YAML config file")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", os.Getenv("DRIFTER_DATA_DIR"), "SDE directory (overrides config)")
	root.PersistentFlags().StringVar(&dbPath, "db", os.Getenv("DRIFTER_DB"), "SQLite database (overrides config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", os.Getenv("DRIFTER_LOG_LEVEL"), "debug, info, warn or error")

	root.AddCommand(serveCmd())
	root.AddCommand(routeCmd())
	root.AddCommand(regionsCmd())
	root.AddCommand(pathCmd())
	root.AddCommand(scanCmd())
	root.AddCommand(fleetCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(sdeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var ue *api.UnresolvedError
		if errors.As(err, &ue) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if addr := os.Getenv("DRIFTER_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)
	return cfg, nil
}

// env is what most commands need: config, database and optionally the universe.
type env struct {
	cfg  *config.Config
	db   *db.DB
	data *sde.Data
}

func openEnv(withSDE bool) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, db: database}
	if withSDE {
		data, err := loadSDE(cfg)
		if err != nil {
			database.Close()
			return nil, err
		}
		e.data = data
	}
	return e, nil
}

func (e *env) Close() {
	e.db.Close()
}

func loadSDE(cfg *config.Config) (*sde.Data, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return sde.Load(cfg.DataDir, sde.Options{
		Download:    cfg.DownloadSDE,
		Jumpbridges: cfg.UseJumpbridges,
	})
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
