package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverDynamoDB = "dynamodb"
	StoreDriverMemory   = "memory"

	CacheDriverRedis = "redis"
	CacheDriverNoop  = "noop"

	MessagingDriverKafka = "kafka"
	MessagingDriverNoop  = "noop"
)

// HTTP holds the API listener settings.
type HTTP struct {
	Port int
}

// Store selects the order store backend and its DynamoDB tables.
type Store struct {
	Driver             string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	CustomersTable     string
	PromoCodesTable    string
	OrdersTable        string
	DepositRefsTable   string
}

// ForestAPI configures the QRIS deposit provider.
type ForestAPI struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	Method        string
	Timeout       time.Duration
}

// Midtrans configures the card/e-wallet snap gateway.
type Midtrans struct {
	ServerKey    string
	ClientKey    string
	Production   bool
	ExpiryWindow time.Duration
}

// Panel configures the external server provisioning API.
type Panel struct {
	APIURL  string
	Domain  string
	PTLA    string
	PTLC    string
	Timeout time.Duration
}

// Cache configures the deposit status cache.
type Cache struct {
	Driver           string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	DepositStatusTTL time.Duration
}

// Messaging configures order lifecycle event publishing.
type Messaging struct {
	Driver   string
	Brokers  []string
	Topic    string
	ClientID string
}

// Log configures the zap logger.
type Log struct {
	ServiceName string
	Environment string
	Level       string
	Encoding    string
}

// Config is loaded once at start-up and shared read-only afterwards.
type Config struct {
	HTTP               HTTP
	Store              Store
	ForestAPI          ForestAPI
	Midtrans           Midtrans
	Panel              Panel
	Cache              Cache
	Messaging          Messaging
	Log                Log
	PaymentGatewayMock bool
	CatalogFile        string
}

var loadEnvOnce sync.Once

// Load builds a Config from environment variables (and a .env file when present).
func Load() (Config, error) {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	cfg := Config{
		HTTP: HTTP{
			Port: getEnvAsInt("HTTP_PORT", 8080),
		},
		Store: Store{
			Driver:             strings.ToLower(getEnv("ORDER_STORE_DRIVER", StoreDriverDynamoDB)),
			AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
			AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", "local"),
			AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", "local"),
			DynamoDBEndpoint:   getEnv("DYNAMODB_ENDPOINT", ""),
			CustomersTable:     getEnv("CUSTOMERS_TABLE", "customers"),
			PromoCodesTable:    getEnv("PROMO_CODES_TABLE", "promo_codes"),
			OrdersTable:        getEnv("ORDERS_TABLE", "orders"),
			DepositRefsTable:   getEnv("ORDER_DEPOSIT_REFS_TABLE", "order_deposit_refs"),
		},
		ForestAPI: ForestAPI{
			BaseURL:       strings.TrimRight(getEnv("FORESTAPI_BASE_URL", "https://m.forestapi.web.id/api/h2h"), "/"),
			APIKey:        getEnv("FOREST_API_KEY", ""),
			WebhookSecret: getEnv("FORESTAPI_WEBHOOK_SECRET", ""),
			Method:        getEnv("FORESTAPI_METHOD", "QRISFAST"),
			Timeout:       getEnvAsDuration("FORESTAPI_TIMEOUT", 15*time.Second),
		},
		Midtrans: Midtrans{
			ServerKey:    getEnv("MIDTRANS_SERVER_KEY", ""),
			ClientKey:    getEnv("MIDTRANS_CLIENT_KEY", ""),
			Production:   getEnvAsBool("MIDTRANS_PRODUCTION", false),
			ExpiryWindow: getEnvAsDuration("MIDTRANS_EXPIRY_WINDOW", 24*time.Hour),
		},
		Panel: Panel{
			APIURL:  getEnv("PANEL_API_URL", "https://restapi.mat.web.id/api/pterodactyl/create"),
			Domain:  getEnv("PTERO_PANEL_DOMAIN", ""),
			PTLA:    getEnv("PTERO_API_KEY_PTLA", ""),
			PTLC:    getEnv("PTERO_API_KEY_PTLC", ""),
			Timeout: getEnvAsDuration("PROVISIONING_TIMEOUT", 30*time.Second),
		},
		Cache: Cache{
			Driver:           strings.ToLower(getEnv("CACHE_DRIVER", CacheDriverNoop)),
			RedisAddr:        getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			RedisPassword:    getEnv("REDIS_PASSWORD", ""),
			RedisDB:          getEnvAsInt("REDIS_DB", 0),
			DepositStatusTTL: getEnvAsDuration("DEPOSIT_STATUS_CACHE_TTL", 5*time.Second),
		},
		Messaging: Messaging{
			Driver:   strings.ToLower(getEnv("MESSAGING_DRIVER", MessagingDriverNoop)),
			Brokers:  getEnvAsStringSlice("KAFKA_BROKERS", []string{"127.0.0.1:9092"}),
			Topic:    getEnv("KAFKA_TOPIC", "hosting.orders"),
			ClientID: getEnv("KAFKA_CLIENT_ID", "amat-hosting-api"),
		},
		Log: Log{
			ServiceName: getEnv("SERVICE_NAME", "amat-hosting-api"),
			Environment: getEnv("APP_ENV", "local"),
			Level:       strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
			Encoding:    strings.ToLower(strings.TrimSpace(getEnv("LOG_ENCODING", "json"))),
		},
		PaymentGatewayMock: isMockEnabled(),
		CatalogFile:        getEnv("PACKAGE_CATALOG_FILE", ""),
	}

	if cfg.HTTP.Port <= 0 {
		return Config{}, fmt.Errorf("invalid HTTP port: %d", cfg.HTTP.Port)
	}

	switch cfg.Store.Driver {
	case StoreDriverDynamoDB, StoreDriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported order store driver: %s", cfg.Store.Driver)
	}

	switch cfg.Cache.Driver {
	case CacheDriverRedis, CacheDriverNoop:
	default:
		return Config{}, fmt.Errorf("unsupported cache driver: %s", cfg.Cache.Driver)
	}
	if cfg.Cache.Driver == CacheDriverRedis && cfg.Cache.RedisAddr == "" {
		return Config{}, fmt.Errorf("missing REDIS_ADDR for redis cache")
	}

	switch cfg.Messaging.Driver {
	case MessagingDriverKafka, MessagingDriverNoop:
	default:
		return Config{}, fmt.Errorf("unsupported messaging driver: %s", cfg.Messaging.Driver)
	}
	if cfg.Messaging.Driver == MessagingDriverKafka {
		if len(cfg.Messaging.Brokers) == 0 {
			return Config{}, fmt.Errorf("KAFKA_BROKERS must be provided")
		}
		if cfg.Messaging.Topic == "" {
			return Config{}, fmt.Errorf("KAFKA_TOPIC must be provided")
		}
	}

	if cfg.ForestAPI.Timeout <= 0 {
		cfg.ForestAPI.Timeout = 15 * time.Second
	}
	if cfg.Panel.Timeout <= 0 {
		cfg.Panel.Timeout = 30 * time.Second
	}
	if cfg.Cache.DepositStatusTTL < 0 {
		cfg.Cache.DepositStatusTTL = 0
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Encoding == "" {
		cfg.Log.Encoding = "json"
	}

	return cfg, nil
}

func isMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "PROVISIONING_MOCK"} {
		switch strings.ToLower(strings.TrimSpace(getEnv(key, ""))) {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
