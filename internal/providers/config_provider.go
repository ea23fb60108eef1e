package providers

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"mindmate/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

const AppName = "MindMate"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("backend.baseUrl", "http://localhost:5000")
	v.SetDefault("backend.transport", "dispatch")
	v.SetDefault("backend.rpcPath", "/rpc")
	v.SetDefault("backend.timeout", 15*time.Second)
	v.SetDefault("backend.userId", "user1")
	v.SetDefault("backend.userName", "Friend")

	v.SetDefault("insights.commonEmotionsDays", 30)
	v.SetDefault("insights.trendLookbackDays", 14)
	v.SetDefault("insights.triggerLookbackDays", 30)
	v.SetDefault("insights.breathingDurationSeconds", 300)
	v.SetDefault("insights.partialResults", false)

	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8090)
	v.SetDefault("monitor.interval", 30*time.Second)

	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.mode", 0644)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("metrics.enabled", false)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	v.BindEnv("backend.baseUrl", "MINDMATE_BACKEND_URL")
	v.BindEnv("backend.transport", "MINDMATE_TRANSPORT")
	v.BindEnv("backend.userId", "MINDMATE_USER_ID")
	v.BindEnv("logger.level", "MINDMATE_LOG_LEVEL")
	v.BindEnv("cache.enabled", "MINDMATE_CACHE_ENABLED")
	v.BindEnv("cache.size", "MINDMATE_CACHE_SIZE")

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err := v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
