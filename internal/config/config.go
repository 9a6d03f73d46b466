package config

import (
	"os"
	"strconv"
)

type InsuranceServiceConfig struct {
	Port         string
	APIKey       string
	OperatorID   string
	PostgresCfg  PostgresConfig
	RedisCfg     RedisConfig
	RabbitMQCfg  RabbitMQConfig
	InsuranceCfg InsuranceConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

// InsuranceConfig holds the boot defaults for the operator-tunable
// settings: premium and compensation amounts plus eligibility thresholds.
type InsuranceConfig struct {
	PremiumAmount            int64
	CompensationAmount       int64
	DelayThresholdHours      int64
	RainfallThresholdMM      int64
	ConsecutiveDaysThreshold int
}

func New() *InsuranceServiceConfig {
	return &InsuranceServiceConfig{
		Port:       getEnvOrDefault("PORT", "8086"),
		APIKey:     getEnvOrDefault("API_KEY", ""),
		OperatorID: getEnvOrDefault("OPERATOR_ID", "operator"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "parametric"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", ""),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", ""),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", ""),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		InsuranceCfg: InsuranceConfig{
			PremiumAmount:            getEnvInt64OrDefault("PREMIUM_AMOUNT", 100),
			CompensationAmount:       getEnvInt64OrDefault("COMPENSATION_AMOUNT", 500),
			DelayThresholdHours:      getEnvInt64OrDefault("DELAY_THRESHOLD_HOURS", 2),
			RainfallThresholdMM:      getEnvInt64OrDefault("RAINFALL_THRESHOLD_MM", 5),
			ConsecutiveDaysThreshold: int(getEnvInt64OrDefault("CONSECUTIVE_DAYS_THRESHOLD", 3)),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
