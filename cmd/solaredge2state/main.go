package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/solsync/solaredge2state/internal/adapter/mqttpub"
	"github.com/solsync/solaredge2state/internal/adapter/redisstore"
	"github.com/solsync/solaredge2state/internal/adapter/solaredge"
	"github.com/solsync/solaredge2state/internal/config"
	"github.com/solsync/solaredge2state/internal/core/domain"
	"github.com/solsync/solaredge2state/internal/core/port"
	"github.com/solsync/solaredge2state/internal/core/service"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/lmittmann/tint"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// startup logging before zap is configured
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		TimeFormat: time.DateTime,
	})))
	slog.Info("solaredge2state", "version", versioninfo.Short())

	cfg, err := initConfig()
	if err != nil {
		slog.Error("config error", "error", err)
		return 1
	}
	safePrintConfig(*cfg)

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(zapCfg.Build())
	defer logger.Sync()

	store := redisstore.New(cfg.Redis, logger)
	defer store.Close()

	monitor := solaredge.NewClient(cfg.API.BaseURL, cfg.APIKey,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second, logger)

	var announcer port.Announcer
	if cfg.MQTT.Enable {
		mq := mqttpub.NewAnnouncer(cfg.MQTT, logger)
		if err := mq.Connect(); err != nil {
			// the store stays authoritative; only the push mirror is lost
			logger.Warn("MQTT connect failed, running without change announcements", zap.Error(err))
		} else {
			defer mq.Close()
			announcer = mq
		}
	}

	site := domain.SiteContext{
		SiteID:              cfg.SiteID,
		HasPowerFlowFeature: cfg.EnablePowerFlow,
	}

	runner := &service.Runner{
		Site:    site,
		Monitor: monitor,
		Reconciler: &service.Reconciler{
			Store:  store,
			Logger: logger,
		},
		Publisher: &service.Publisher{
			Store:     store,
			Announcer: announcer,
			Logger:    logger,
		},
		Schedule: &service.ScheduleAdjuster{
			Store:  store,
			Logger: logger,
		},
		Logger: logger,
	}

	if err := runner.Run(context.Background()); err != nil {
		return 1
	}
	return 0
}

func initConfig() (*config.Config, error) {

	setConfigDefaults()

	viper.SetEnvPrefix("solaredge")
	viper.AutomaticEnv()

	// if defined, try to load config from yaml file
	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			slog.Info("Using config", "file", cfgFile)
			viper.SetConfigFile(cfgFile)

			err = viper.ReadInConfig()
			if err != nil {
				slog.Error("Error reading config file", "error", err)
			}
		}
	}

	var cfg config.Config

	err := viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	// parse log level
	switch viper.GetString("log_level") {
	case "trace":
		cfg.LogLevel = zap.DebugLevel
	case "debug":
		cfg.LogLevel = zap.DebugLevel
	case "info":
		cfg.LogLevel = zap.InfoLevel
	case "error":
		cfg.LogLevel = zap.ErrorLevel
	case "warn":
		cfg.LogLevel = zap.WarnLevel
	case "fatal":
		cfg.LogLevel = zap.FatalLevel
	default:
		cfg.LogLevel = zap.InfoLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setConfigDefaults() {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("enable_power_flow", false)
	viper.SetDefault("api.base_url", solaredge.DefaultBaseURL)
	viper.SetDefault("api.timeout_seconds", 15)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.namespace", "solaredge")
	viper.SetDefault("mqtt.enable", false)
	viper.SetDefault("mqtt.port", 1883)
	viper.SetDefault("mqtt.base_topic", "solaredge2state")
}

func safePrintConfig(cfg config.Config) {
	cfg.APIKey = config.RedactKey(cfg.APIKey)
	cfg.Redis.Password = "*redacted*"
	cfg.MQTT.Password = "*redacted*"
	slog.Info("Using", "config", cfg)
}
