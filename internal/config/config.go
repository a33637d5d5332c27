package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Session     SessionConfig
	Leaderboard LeaderboardConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis.
// Поддерживает режимы: single, sentinel, cluster.
type RedisConfig struct {
	// Mode: режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: список адресов Redis (хост:порт). Используется для всех режимов.
	// Для 'single', если не пуст, берется первый адрес.
	Addrs []string `mapstructure:"addrs"`

	// Addr: адрес для режима 'single', если Addrs пустой
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: имя мастер-сервера (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`
}

// SessionConfig содержит настройки игровых сессий
type SessionConfig struct {
	// QuestionTimeLimitMs - время на ответ на один вопрос (мс)
	QuestionTimeLimitMs int64 `mapstructure:"question_time_limit_ms"`
	// FeedbackDelayMs - пауза между ответом и следующим вопросом (мс)
	FeedbackDelayMs int64 `mapstructure:"feedback_delay_ms"`
	// SubmittedKeyTTLSeconds - TTL ключа защиты от повторной отправки результата
	SubmittedKeyTTLSeconds int `mapstructure:"submitted_key_ttl_seconds"`
	// CompletedRetentionSeconds - время хранения завершенной сессии в памяти
	CompletedRetentionSeconds int `mapstructure:"completed_retention_seconds"`
}

// LeaderboardConfig содержит настройки лидербордов
type LeaderboardConfig struct {
	// CacheTTLSeconds - TTL кеша лидербордов в Redis
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // отдельный экземпляр Viper, без глобального состояния

	// Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("session.question_time_limit_ms", 30000)
	vip.SetDefault("session.feedback_delay_ms", 2000)
	vip.SetDefault("session.submitted_key_ttl_seconds", 3600)
	vip.SetDefault("session.completed_retention_seconds", 300)
	vip.SetDefault("leaderboard.cache_ttl_seconds", 30)

	// Привязываем переменные окружения ЯВНО
	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("session.question_time_limit_ms", "SESSION_QUESTION_TIME_LIMIT_MS")
	vip.BindEnv("session.feedback_delay_ms", "SESSION_FEEDBACK_DELAY_MS")

	vip.BindEnv("leaderboard.cache_ttl_seconds", "LEADERBOARD_CACHE_TTL_SECONDS")

	// Читаем файл конфигурации, если он задан (отсутствие файла не фатально)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Question Time Limit: %d ms", cfg.Session.QuestionTimeLimitMs)
		log.Printf("Feedback Delay: %d ms", cfg.Session.FeedbackDelayMs)
		log.Printf("-----------------------------------------")
	}

	// Проверка обязательных параметров
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.Session.QuestionTimeLimitMs <= 0 || cfg.Session.FeedbackDelayMs < 0 {
		return nil, fmt.Errorf("session timing configuration is invalid")
	}

	return &cfg, nil
}
