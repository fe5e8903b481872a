package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ORDER_STORE_DRIVER", "")
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("MESSAGING_DRIVER", "")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("PROVISIONING_MOCK", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Store.Driver != StoreDriverDynamoDB || cfg.Store.OrdersTable != "orders" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Cache.Driver != CacheDriverNoop || cfg.Messaging.Driver != MessagingDriverNoop {
		t.Fatalf("expected noop cache and messaging, got %q %q", cfg.Cache.Driver, cfg.Messaging.Driver)
	}
	if cfg.ForestAPI.Method != "QRISFAST" {
		t.Fatalf("unexpected forestapi method %q", cfg.ForestAPI.Method)
	}
	if cfg.Panel.Timeout != 30*time.Second {
		t.Fatalf("unexpected provisioning timeout %v", cfg.Panel.Timeout)
	}
	if cfg.PaymentGatewayMock {
		t.Fatalf("mock mode should be off by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("ORDER_STORE_DRIVER", "MEMORY")
	t.Setenv("PROVISIONING_TIMEOUT", "5s")
	t.Setenv("KAFKA_BROKERS", " a:9092, ,b:9092 ")
	t.Setenv("MESSAGING_DRIVER", "kafka")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "yes")
	t.Setenv("FORESTAPI_BASE_URL", "http://forest.local/api/h2h/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9000 || cfg.Store.Driver != StoreDriverMemory {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Panel.Timeout != 5*time.Second {
		t.Fatalf("unexpected provisioning timeout %v", cfg.Panel.Timeout)
	}
	if len(cfg.Messaging.Brokers) != 2 || cfg.Messaging.Brokers[1] != "b:9092" {
		t.Fatalf("unexpected brokers %v", cfg.Messaging.Brokers)
	}
	if !cfg.PaymentGatewayMock {
		t.Fatalf("expected mock mode")
	}
	if cfg.ForestAPI.BaseURL != "http://forest.local/api/h2h" {
		t.Fatalf("unexpected base url %q", cfg.ForestAPI.BaseURL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad port":      {"HTTP_PORT", "-1"},
		"bad store":     {"ORDER_STORE_DRIVER", "mongo"},
		"bad cache":     {"CACHE_DRIVER", "memcached"},
		"bad messaging": {"MESSAGING_DRIVER", "nats"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
