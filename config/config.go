package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Settings is read from POS_* environment variables, after an optional
// .env file.
type Settings struct {
	HTTPAddr  string `envconfig:"HTTP_ADDR" default:":8080"`
	PublicURL string `envconfig:"PUBLIC_URL" default:"http://localhost:8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// Storage selects the snapshot backend: sqlite, redis or postgres.
	Storage      string        `envconfig:"STORAGE" default:"sqlite"`
	SQLitePath   string        `envconfig:"SQLITE_PATH" default:"pizzaria.db"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"2s"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"pizzaria"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`

	RedisHost   string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort   string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPrefix string `envconfig:"REDIS_PREFIX" default:"pos:"`

	// KafkaBroker left empty disables the order event journal.
	KafkaBroker string `envconfig:"KAFKA_BROKER"`
	OrdersTopic string `envconfig:"ORDERS_TOPIC" default:"order-events"`
	SalesGroup  string `envconfig:"SALES_GROUP" default:"sales-svc"`
}

func Load() (Settings, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Settings{}, fmt.Errorf("read .env: %w", err)
	}

	var s Settings
	if err := envconfig.Process("pos", &s); err != nil {
		return Settings{}, fmt.Errorf("read environment: %w", err)
	}
	switch s.Storage {
	case "sqlite", "redis", "postgres":
	default:
		return Settings{}, fmt.Errorf("unknown storage backend %q", s.Storage)
	}
	return s, nil
}

func NewLogger(level, format string) (*log.Logger, error) {
	logger := log.New()
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(parsed)

	switch format {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}

func (s Settings) PostgresDSN() string {
	return "host=" + s.DBHost + " port=" + s.DBPort + " user=" + s.DBUser +
		" password=" + s.DBPassword + " dbname=" + s.DBName + " sslmode=disable"
}

func MustInitPostgres(s Settings) *sql.DB {
	db, err := sql.Open("postgres", s.PostgresDSN())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.WithError(err).Fatal("Failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(s Settings) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: s.RedisHost + ":" + s.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}

	return client
}

func MustInitSQLite(s Settings) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(s.SQLitePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.WithError(err).WithField("path", s.SQLitePath).Fatal("Failed to open SQLite database")
	}
	return db
}

func NewKafkaReader(s Settings) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{s.KafkaBroker},
		Topic:   s.OrdersTopic,
		GroupID: s.SalesGroup,
	})
}

// NewKafkaWriter returns an async writer: publishing never waits on the
// broker.
func NewKafkaWriter(s Settings) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(s.KafkaBroker),
		Topic:    s.OrdersTopic,
		Balancer: &kafka.Hash{},
		Async:    true,
	}
}
