package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	config     *Config
	configOnce sync.Once
)

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Supported OTP delivery transports.
const (
	DeliveryLog   = "log"
	DeliveryRedis = "redis"
	DeliveryMQTT  = "mqtt"
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string
	DBPath          string // sqlite file
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBMigrationMode string // "auto" (default) or "drop"
	DBLogLevel      string // silent, error, warn, info

	// Server
	ServerPort      string
	LogDir          string
	CORSAllowOrigin string
	CacheTTL        time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MQTT
	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTUsername    string
	MQTTPassword    string
	MQTTQoS         int
	MQTTRetained    bool
	MQTTTopicPrefix string

	// OTP delivery
	OTPDelivery  string
	OTPOutboxTTL time.Duration

	// JWT Authentication
	JWTSecretKey string
	JWTTTL       time.Duration
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	switch strings.ToUpper(envType) {
	case "LOCAL":
		prefix = "LOCAL_"
	case "SERVER":
		prefix = "SERVER_"
	default:
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	cfg := &Config{
		EnvType: strings.ToUpper(envType),

		DBDriver:        strings.ToLower(getEnv(prefix+"DB_DRIVER", getEnv("DB_DRIVER", DriverSQLite))),
		DBPath:          getEnv(prefix+"DB_PATH", getEnv("DB_PATH", "users.db")),
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", "auto"),
		DBLogLevel:      getEnv("DB_LOG_LEVEL", "warn"),

		ServerPort:      getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "8080")),
		LogDir:          getEnv("LOG_DIR", "logs"),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
		CacheTTL:        getEnvAsDuration("CACHE_TTL", 5*time.Second),
		RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 0),

		RedisHost:     getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "localhost")),
		RedisPort:     getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MQTTBrokerURL:   getEnv("MQTT_BROKER_URL", "tcp://localhost:1883"),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "census_otp_server"),
		MQTTUsername:    getEnv("MQTT_USERNAME", ""),
		MQTTPassword:    getEnv("MQTT_PASSWORD", ""),
		MQTTQoS:         getEnvAsInt("MQTT_QOS", 1),
		MQTTRetained:    getEnvAsBool("MQTT_RETAINED", false),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "census/otp"),

		OTPDelivery:  strings.ToLower(getEnv("OTP_DELIVERY", DeliveryLog)),
		OTPOutboxTTL: getEnvAsDuration("OTP_OUTBOX_TTL", 5*time.Minute),

		JWTSecretKey: getEnv("JWT_SECRET_KEY", "census-secret-key-change-in-production"),
		JWTTTL:       getEnvAsDuration("JWT_TTL", 24*time.Hour),
	}

	// MySQL has no sensible defaults; refuse to start half-configured.
	if cfg.DBDriver == DriverMySQL {
		cfg.DBHost = getEnvRequired(prefix + "DB_HOST")
		cfg.DBUser = getEnvRequired(prefix + "DB_USER")
		cfg.DBPassword = getEnvRequired(prefix + "DB_PASSWORD")
		cfg.DBName = getEnvRequired(prefix + "DB_NAME")
		cfg.DBPort = getEnv(prefix+"DB_PORT", "3306")
	}

	fmt.Printf("Loading configuration for environment: %s (db driver: %s)\n", cfg.EnvType, cfg.DBDriver)
	return cfg
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	if c.DBDriver == DriverMySQL {
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
	}
	return c.DBPath + "?_foreign_keys=on&_busy_timeout=5000"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvRequired panics when key is unset or empty.
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
