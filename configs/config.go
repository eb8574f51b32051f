package configs

import (
	"log"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values
type Config struct {
	Port        string
	JWTSecret   string
	ServiceName string

	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	PostgresDB       string

	RedisURL string

	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	RosterURL      string
	RosterTimeout  time.Duration
	RosterCacheTTL time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
}

var (
	ConfigInstance *Config
	once           sync.Once
)

// Load loads configuration from the environment and an optional .env file
func Load() *Config {
	once.Do(func() {
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
		viper.AddConfigPath(".")

		// Set defaults
		viper.SetDefault("VOTING_PORT", "8080")
		viper.SetDefault("VOTING_JWT_SECRET", "secret")
		viper.SetDefault("SERVICE_NAME", "voting-service")
		viper.SetDefault("POSTGRES_USER", "postgres")
		viper.SetDefault("POSTGRES_PASSWORD", "password")
		viper.SetDefault("POSTGRES_HOST", "localhost")
		viper.SetDefault("POSTGRES_PORT", "5432")
		viper.SetDefault("POSTGRES_DB", "voting")
		viper.SetDefault("REDIS_URL", "redis://127.0.0.1:6379/0")
		viper.SetDefault("KAFKA_BROKERS", []string{"localhost:9092"})
		viper.SetDefault("KAFKA_TOPIC", "events")
		viper.SetDefault("KAFKA_GROUP_ID", "voting-service")
		viper.SetDefault("ROSTER_URL", "http://meeting-service:8080")
		viper.SetDefault("ROSTER_TIMEOUT", "2s")
		viper.SetDefault("ROSTER_CACHE_TTL", "1m")
		viper.SetDefault("MINIO_ENDPOINT", "")
		viper.SetDefault("MINIO_ACCESS_KEY", "")
		viper.SetDefault("MINIO_SECRET_KEY", "")
		viper.SetDefault("MINIO_BUCKET", "poll-results")
		viper.AutomaticEnv()

		// Read the .env file
		if err := viper.ReadInConfig(); err != nil {
			log.Printf("Warning: Error reading .env file: %v", err)
			log.Printf("Using environment variables and defaults")
		}

		rosterTimeout, err := time.ParseDuration(viper.GetString("ROSTER_TIMEOUT"))
		if err != nil {
			log.Fatal("Invalid ROSTER_TIMEOUT format")
		}
		rosterCacheTTL, err := time.ParseDuration(viper.GetString("ROSTER_CACHE_TTL"))
		if err != nil {
			log.Fatal("Invalid ROSTER_CACHE_TTL format")
		}

		ConfigInstance = &Config{
			Port:             viper.GetString("VOTING_PORT"),
			JWTSecret:        viper.GetString("VOTING_JWT_SECRET"),
			ServiceName:      viper.GetString("SERVICE_NAME"),
			PostgresUser:     viper.GetString("POSTGRES_USER"),
			PostgresPassword: viper.GetString("POSTGRES_PASSWORD"),
			PostgresHost:     viper.GetString("POSTGRES_HOST"),
			PostgresPort:     viper.GetString("POSTGRES_PORT"),
			PostgresDB:       viper.GetString("POSTGRES_DB"),
			RedisURL:         viper.GetString("REDIS_URL"),
			KafkaBrokers:     viper.GetStringSlice("KAFKA_BROKERS"),
			KafkaTopic:       viper.GetString("KAFKA_TOPIC"),
			KafkaGroupID:     viper.GetString("KAFKA_GROUP_ID"),
			RosterURL:        viper.GetString("ROSTER_URL"),
			RosterTimeout:    rosterTimeout,
			RosterCacheTTL:   rosterCacheTTL,
			MinioEndpoint:    viper.GetString("MINIO_ENDPOINT"),
			MinioAccessKey:   viper.GetString("MINIO_ACCESS_KEY"),
			MinioSecretKey:   viper.GetString("MINIO_SECRET_KEY"),
			MinioBucket:      viper.GetString("MINIO_BUCKET"),
		}
	})
	return ConfigInstance
}
