// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver           string        `mapstructure:"DB_DRIVER"`
	DBSource           string        `mapstructure:"DB_SOURCE"`
	MigrationURL       string        `mapstructure:"MIGRATION_URL"`
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`
	Environment        string        `mapstructure:"GO_ENV"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	TokenKind          string        `mapstructure:"TOKEN_KIND"`
	TokenSymmetricKey  string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AdminTokenDuration time.Duration `mapstructure:"ADMIN_TOKEN_DURATION"`
	AdminSecretHash    string        `mapstructure:"ADMIN_SECRET_HASH"`
	CodeTTL            time.Duration `mapstructure:"CODE_TTL"`
	NotifierKind       string        `mapstructure:"NOTIFIER_KIND"`
	NotifyWorkers      int           `mapstructure:"NOTIFY_WORKERS"`
	NotifyQueueSize    int           `mapstructure:"NOTIFY_QUEUE_SIZE"`
	NotifyTimeout      time.Duration `mapstructure:"NOTIFY_TIMEOUT"`
	KafkaBrokers       string        `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic         string        `mapstructure:"KAFKA_TOPIC"`
	RedisAddress       string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int           `mapstructure:"REDIS_DB"`
	RedisQueue         string        `mapstructure:"REDIS_QUEUE"`
}

// KafkaBrokerList splits the comma separated KAFKA_BROKERS value.
func (c Config) KafkaBrokerList() []string {
	var brokers []string

	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return brokers
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("MIGRATION_URL", "file://configs/db/migration")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("SHUTDOWN_TIMEOUT", 15*time.Second)
	v.SetDefault("TOKEN_KIND", "paseto")
	v.SetDefault("ADMIN_TOKEN_DURATION", 15*time.Minute)
	v.SetDefault("CODE_TTL", 5*time.Minute)
	v.SetDefault("NOTIFY_WORKERS", 4)
	v.SetDefault("NOTIFY_QUEUE_SIZE", 256)
	v.SetDefault("NOTIFY_TIMEOUT", 10*time.Second)
	v.SetDefault("KAFKA_TOPIC", "ledger.security-codes")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_QUEUE", "ledger:security-codes")
}

// Load reads configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
