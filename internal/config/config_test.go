package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.GRPCAddr() != "0.0.0.0:50051" {
		t.Fatalf("addrs = %q %q", cfg.HTTPAddr, cfg.GRPCAddr())
	}
	if cfg.HorizonDays != 365 || cfg.MaxAlternatives != 5 {
		t.Fatalf("checker = %d/%d", cfg.HorizonDays, cfg.MaxAlternatives)
	}
	if cfg.VenueRentalPrice != 5000 || cfg.ServicesPrice != 1500 {
		t.Fatalf("pricing = %d/%d", cfg.VenueRentalPrice, cfg.ServicesPrice)
	}
	if cfg.RequestTimeout != 10*time.Second || cfg.RedisCacheTTL != time.Minute {
		t.Fatalf("durations = %v %v", cfg.RequestTimeout, cfg.RedisCacheTTL)
	}
	if cfg.VenueLocation != time.UTC {
		t.Fatalf("location = %v", cfg.VenueLocation)
	}
	if cfg.KafkaPublishTimeout != 2*time.Second {
		t.Fatalf("publish timeout = %v", cfg.KafkaPublishTimeout)
	}
	if len(cfg.KafkaBrokers) != 0 || cfg.RedisEnabled {
		t.Fatalf("optional backends enabled by default: %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VENUE_GRPC_ADDR", "127.0.0.1:9090")
	t.Setenv("VENUE_KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("VENUE_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("VENUE_TIMEZONE", "Africa/Lagos")
	t.Setenv("VENUE_AVAILABILITY_HORIZON_DAYS", "30")
	t.Setenv("VENUE_REDIS_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GRPCAddr() != "127.0.0.1:9090" {
		t.Fatalf("grpc addr = %q", cfg.GRPCAddr())
	}
	if want := []string{"k1:9092", "k2:9092"}; !reflect.DeepEqual(cfg.KafkaBrokers, want) {
		t.Fatalf("brokers = %v, want %v", cfg.KafkaBrokers, want)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("origins = %v", cfg.CORSOrigins)
	}
	if cfg.VenueLocation.String() != "Africa/Lagos" {
		t.Fatalf("location = %v", cfg.VenueLocation)
	}
	if cfg.HorizonDays != 30 || !cfg.RedisEnabled {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"VENUE_REQUEST_TIMEOUT":           "soon",
		"VENUE_TIMEZONE":                  "Mars/Olympus",
		"VENUE_AVAILABILITY_HORIZON_DAYS": "0",
		"VENUE_JWT_TTL":                   "-1h",
	}
	for env, val := range cases {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", env, val)
			}
		})
	}
}

func TestLoad_IgnoresProcessTZ(t *testing.T) {
	t.Setenv("TZ", ":/etc/localtime")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.VenueLocation != time.UTC {
		t.Fatalf("location = %v, want UTC", cfg.VenueLocation)
	}
}
