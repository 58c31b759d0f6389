package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const EnvProduction = "production"

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Gateway GatewayConfig
	Payment PaymentConfig
	Saga    SagaConfig
	Kafka   KafkaConfig
	Redis   RedisConfig
	Tracing TracingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	Env  string `envconfig:"ENVIRONMENT" default:"development"`
}

func (c ServerConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Gateway-Secret,X-User-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Argentina/Buenos_Aires"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-10800"` // -3*60*60
}

// Service-to-service authentication between the API gateway and this service.
// An empty secret denies every request.
type GatewayConfig struct {
	SharedSecret string        `envconfig:"GATEWAY_SHARED_SECRET"`
	TokenTTL     time.Duration `envconfig:"GATEWAY_TOKEN_TTL" default:"5m"`
}

type PaymentConfig struct {
	BaseURL     string        `envconfig:"MERCADOPAGO_BASE_URL" default:"https://api.mercadopago.com"`
	AccessToken string        `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`
	Currency    string        `envconfig:"PAYMENT_CURRENCY" default:"ARS"`
	SuccessURL  string        `envconfig:"PAYMENT_SUCCESS_URL"`
	FailureURL  string        `envconfig:"PAYMENT_FAILURE_URL"`
	PendingURL  string        `envconfig:"PAYMENT_PENDING_URL"`
	UseSandbox  bool          `envconfig:"PAYMENT_USE_SANDBOX" default:"false"`
	Timeout     time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"10s"`
}

type SagaConfig struct {
	PaymentTimeout time.Duration `envconfig:"SAGA_PAYMENT_TIMEOUT" default:"30m"`
	SweepInterval  time.Duration `envconfig:"SAGA_SWEEP_INTERVAL" default:"1m"`
	SweepBatchSize int32         `envconfig:"SAGA_SWEEP_BATCH_SIZE" default:"50"`
	IdempotencyTTL time.Duration `envconfig:"SAGA_IDEMPOTENCY_TTL" default:"24h"`
}

// Empty Brokers keeps the outbox relay on the log publisher.
type KafkaConfig struct {
	Brokers       []string      `envconfig:"KAFKA_BROKERS"`
	Topic         string        `envconfig:"KAFKA_TOPIC" default:"marketplace.events"`
	RelayInterval time.Duration `envconfig:"OUTBOX_RELAY_INTERVAL" default:"2s"`
	BatchSize     int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	MaxAttempts   int32         `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"10"`
}

// Empty Addr disables the product cache.
type RedisConfig struct {
	Addr       string        `envconfig:"REDIS_ADDR"`
	Password   string        `envconfig:"REDIS_PASSWORD"`
	DB         int           `envconfig:"REDIS_DB" default:"0"`
	ProductTTL time.Duration `envconfig:"REDIS_PRODUCT_TTL" default:"30s"`
}

type TracingConfig struct {
	Enabled        bool   `envconfig:"TRACING_ENABLED" default:"false"`
	ServiceName    string `envconfig:"TRACING_SERVICE_NAME" default:"puente-core"`
	JaegerEndpoint string `envconfig:"JAEGER_ENDPOINT" default:"http://localhost:14268/api/traces"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
			Env:  "test",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
			MinConns: 1,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Gateway: GatewayConfig{
			SharedSecret: "test-gateway-secret",
			TokenTTL:     5 * time.Minute,
		},
		Payment: PaymentConfig{
			BaseURL:  "http://127.0.0.1:0",
			Currency: "ARS",
			Timeout:  2 * time.Second,
		},
		Saga: SagaConfig{
			PaymentTimeout: 30 * time.Minute,
			SweepInterval:  time.Minute,
			SweepBatchSize: 50,
			IdempotencyTTL: 24 * time.Hour,
		},
		Kafka: KafkaConfig{
			Topic:         "marketplace.events",
			RelayInterval: time.Second,
			BatchSize:     100,
			MaxAttempts:   3,
		},
		Redis: RedisConfig{
			ProductTTL: 30 * time.Second,
		},
		Tracing: TracingConfig{
			ServiceName: "puente-core-test",
		},
	}
}
