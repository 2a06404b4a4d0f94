package config

import (
	"regexp"
	"strings"

	"github.com/solsync/solaredge2state/internal/core/domain"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level

	SiteID          string `mapstructure:"site_id"`
	APIKey          string `mapstructure:"api_key"`
	EnablePowerFlow bool   `mapstructure:"enable_power_flow"`

	API   APIConfig   `mapstructure:"api"`
	Redis RedisConfig `mapstructure:"redis"`
	MQTT  MQTTConfig  `mapstructure:"mqtt"`
}

type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds uint   `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
}

type MQTTConfig struct {
	Enable    bool
	Host      string
	Port      int
	Username  string
	Password  string
	BaseTopic string `mapstructure:"base_topic"`
}

// Validate enforces the hard preconditions. A missing site id or API key
// aborts before any network call.
func (c *Config) Validate() error {
	if c.SiteID == "" {
		return &domain.ConfigError{Field: "site_id"}
	}
	if c.APIKey == "" {
		return &domain.ConfigError{Field: "api_key"}
	}
	if c.MQTT.Enable {
		topic, err := CheckMQTTTopic(c.MQTT.BaseTopic)
		if err != nil {
			return err
		}
		c.MQTT.BaseTopic = topic
	}
	return nil
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", &domain.ConfigError{Field: "mqtt.base_topic"}
	}
	return lowerBaseTopic, nil
}

// RedactKey shortens a credential to a loggable prefix. Raw keys must never
// reach the logs.
func RedactKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}
