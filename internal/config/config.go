package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Gateway  GatewayConfig
	Events   EventsConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GatewayConfig carries the hosted-payment-gateway integration
// contract: the merchant token, the per-method account routing pairs
// (semicolon-separated "METHOD|TOKEN") and the three redirect URLs
// round-tripped through the gateway.
type GatewayConfig struct {
	BaseURL        string
	Token          string
	Accounts       string
	SelectedMethod string
	Iframe         bool
	IssuerURL      string
	SuccessURL     string
	CancelURL      string
	ErrorURL       string
}

type EventsConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	OIDCIssuer   string
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Brokers  []string
	GroupID  string
	Topics   TopicConfig
	MockMode bool
	Enabled  bool
}

type TopicConfig struct {
	TransactionCreated string
	OrderConfirmed     string
	AuditTrail         string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Username     string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func Load() *Config {
	kafkaEnabled := getEnvBool("KAFKA_ENABLED", true)
	mockMode := getEnvBool("KAFKA_MOCK_MODE", false)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Gateway: GatewayConfig{
			BaseURL:        getEnv("GATEWAY_BASE_URL", "https://gateway.ifthenpay.com/"),
			Token:          getEnv("GATEWAY_TOKEN", ""),
			Accounts:       getEnv("GATEWAY_ACCOUNTS", ""),
			SelectedMethod: getEnv("GATEWAY_SELECTED_METHOD", "1"),
			Iframe:         getEnvBool("GATEWAY_IFRAME", true),
			IssuerURL:      getEnv("CHECKOUT_ISSUER_URL", ""),
			SuccessURL:     getEnv("REDIRECT_SUCCESS_URL", "https://www.live-ls.com/thank-you"),
			CancelURL:      getEnv("REDIRECT_CANCEL_URL", "https://www.live-ls.com/"),
			ErrorURL:       getEnv("REDIRECT_ERROR_URL", "https://www.live-ls.com/"),
		},
		Events: EventsConfig{
			BaseURL: getEnv("EVENTS_API_URL", "http://localhost:9090"),
			Timeout: time.Duration(getEnvInt("EVENTS_API_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Auth: AuthConfig{
			TokenURL:     getEnv("AUTH_TOKEN_URL", ""),
			ClientID:     getEnv("AUTH_CLIENT_ID", "checkout-service"),
			ClientSecret: getEnv("AUTH_CLIENT_SECRET", ""),
			OIDCIssuer:   getEnv("OIDC_ISSUER", ""),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Username:     getEnv("DB_USERNAME", "checkout_user"),
			Password:     getEnv("DB_PASSWORD", "checkout_pass"),
			Database:     getEnv("DB_NAME", "checkout_gateway"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			GroupID:  getEnv("KAFKA_GROUP_ID", "checkout-gateway-group"),
			Enabled:  kafkaEnabled,
			MockMode: mockMode,
			Topics: TopicConfig{
				TransactionCreated: getEnv("KAFKA_TOPIC_TRANSACTION_CREATED", "checkout-transaction-created"),
				OrderConfirmed:     getEnv("KAFKA_TOPIC_ORDER_CONFIRMED", "checkout-order-confirmed"),
				AuditTrail:         getEnv("KAFKA_TOPIC_AUDIT", "checkout-audit-trail"),
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
