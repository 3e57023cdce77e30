package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Flow     FlowConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// PostgresConfig is optional: with no POSTGRES_USER set the simulator
// runs without persistence.
type PostgresConfig struct {
	Enabled  bool
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

// RedisConfig is optional: with no REDIS_ADDR set the simulator runs
// without caching, events and rate limiting.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// FlowConfig overrides the payment auto-transition delays, mainly for
// local demos where waiting the full pause is tedious.
type FlowConfig struct {
	InsertDelay  time.Duration
	ProcessDelay time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: serverHost,
		Port: serverPort,
	}

	postgresCfg := PostgresConfig{}
	if postgresUser := os.Getenv("POSTGRES_USER"); postgresUser != "" {
		postgresHost := os.Getenv("POSTGRES_HOST")
		if postgresHost == "" {
			postgresHost = "localhost"
		}

		postgresPortStr := os.Getenv("POSTGRES_PORT")
		if postgresPortStr == "" {
			postgresPortStr = "5432"
		}

		postgresPort, err := strconv.Atoi(postgresPortStr)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid POSTGRES_PORT: %w", op, err)
		}

		postgresPassword := os.Getenv("POSTGRES_PASSWORD")
		if postgresPassword == "" {
			return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
		}

		postgresDB := os.Getenv("POSTGRES_DB")
		if postgresDB == "" {
			return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
		}

		postgresSSLMode := os.Getenv("POSTGRES_SSLMODE")
		if postgresSSLMode == "" {
			postgresSSLMode = "disable"
		}

		postgresCfg = PostgresConfig{
			Enabled:  true,
			User:     postgresUser,
			Password: postgresPassword,
			Name:     postgresDB,
			Host:     postgresHost,
			Port:     postgresPort,
			SSLMode:  postgresSSLMode,
		}
	}

	redisCfg := RedisConfig{}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisDBStr := os.Getenv("REDIS_DB")
		if redisDBStr == "" {
			redisDBStr = "0"
		}

		redisDB, err := strconv.Atoi(redisDBStr)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid REDIS_DB: %w", op, err)
		}

		redisCfg = RedisConfig{
			Enabled:  true,
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		}
	}

	flowCfg := FlowConfig{}
	if v := os.Getenv("FLOW_INSERT_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid FLOW_INSERT_DELAY_MS: %w", op, err)
		}
		flowCfg.InsertDelay = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("FLOW_PROCESS_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid FLOW_PROCESS_DELAY_MS: %w", op, err)
		}
		flowCfg.ProcessDelay = time.Duration(ms) * time.Millisecond
	}

	return &Config{
		Server:   serverCfg,
		Postgres: postgresCfg,
		Redis:    redisCfg,
		Flow:     flowCfg,
	}, nil
}
