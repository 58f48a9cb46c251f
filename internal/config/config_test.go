package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8000")
	}
	if cfg.MongoURI != "mongodb://localhost:27017/" {
		t.Errorf("MongoURI = %q, want default", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "cosmoDB" {
		t.Errorf("MongoDatabase = %q, want %q", cfg.MongoDatabase, "cosmoDB")
	}
	if cfg.DefaultPageLimit != 10 {
		t.Errorf("DefaultPageLimit = %d, want 10", cfg.DefaultPageLimit)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.ServiceName != "org-access-registry" {
		t.Errorf("ServiceName = %q, want default", cfg.ServiceName)
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("OTLPEndpoint = %q, want empty", cfg.OTLPEndpoint)
	}
	if cfg.OTLPInsecure {
		t.Error("OTLPInsecure should default to false")
	}
	if cfg.TelemetryKafkaTopic != "org-access-telemetry" {
		t.Errorf("TelemetryKafkaTopic = %q, want default", cfg.TelemetryKafkaTopic)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("MONGODB_URI", "mongodb://mongo:27017")
	os.Setenv("MONGODB_DATABASE", "acl")
	os.Setenv("DEFAULT_PAGE_LIMIT", "25")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.MongoURI != "mongodb://mongo:27017" {
		t.Errorf("MongoURI = %q, want %q", cfg.MongoURI, "mongodb://mongo:27017")
	}
	if cfg.MongoDatabase != "acl" {
		t.Errorf("MongoDatabase = %q, want %q", cfg.MongoDatabase, "acl")
	}
	if cfg.DefaultPageLimit != 25 {
		t.Errorf("DefaultPageLimit = %d, want 25", cfg.DefaultPageLimit)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if !cfg.OTLPInsecure {
		t.Error("OTLPInsecure should be true")
	}
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"negative page limit", "DEFAULT_PAGE_LIMIT", "-1", "config: DEFAULT_PAGE_LIMIT must not be negative"},
		{"unknown log format", "LOG_FORMAT", "xml", "config: LOG_FORMAT must be text or json"},
		{"blank database", "MONGODB_DATABASE", "  ", "config: MONGODB_DATABASE must be set"},
		{"blank uri", "MONGODB_URI", " ", "config: MONGODB_URI must be set"},
		{"otlp endpoint without host", "OTEL_EXPORTER_OTLP_ENDPOINT", "http://", "config: invalid OTEL_EXPORTER_OTLP_ENDPOINT: missing host"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv(tc.key, tc.value)

			cfg, err := Load()
			if err == nil {
				t.Fatal("Load should return error")
			}
			if cfg != nil {
				t.Error("Load should return nil config on error")
			}
			if err.Error() != tc.want {
				t.Errorf("error = %q, want %q", err.Error(), tc.want)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"valid", "30s", 30 * time.Second},
		{"invalid", "invalid", 10 * time.Second},
		{"zero", "0", 10 * time.Second},
		{"negative", "-5s", 10 * time.Second},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{MongoTimeout: tc.value}
			if got := cfg.MongoTimeoutDuration(); got != tc.want {
				t.Errorf("MongoTimeoutDuration = %v, want %v", got, tc.want)
			}
		})
	}

	cfg := &Config{HTTPReadTimeout: "1m", HTTPWriteTimeout: "bogus"}
	if got := cfg.ReadTimeout(); got != time.Minute {
		t.Errorf("ReadTimeout = %v, want %v", got, time.Minute)
	}
	if got := cfg.WriteTimeout(); got != 15*time.Second {
		t.Errorf("WriteTimeout = %v, want %v (default)", got, 15*time.Second)
	}
}

func TestTelemetryKafkaBrokersList(t *testing.T) {
	testCases := []struct {
		name    string
		brokers string
		want    []string
	}{
		{"empty", "", nil},
		{"single", "localhost:9092", []string{"localhost:9092"}},
		{"multiple with spaces", " k1:9092 , k2:9092,,", []string{"k1:9092", "k2:9092"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{TelemetryKafkaBrokers: tc.brokers}
			if got := cfg.TelemetryKafkaBrokersList(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("TelemetryKafkaBrokersList = %v, want %v", got, tc.want)
			}
		})
	}

	var nilCfg *Config
	if got := nilCfg.TelemetryKafkaBrokersList(); got != nil {
		t.Errorf("nil config TelemetryKafkaBrokersList = %v, want nil", got)
	}
}

func TestLoad_OTLPTarget(t *testing.T) {
	testCases := []struct {
		name         string
		endpoint     string
		wantTarget   string
		wantInsecure bool
	}{
		{"unset", "", "", false},
		{"host and port", "localhost:4317", "localhost:4317", true},
		{"http with path", "http://collector:4317/v1/traces", "collector:4317", true},
		{"https", "https://collector.example.com:4317", "collector.example.com:4317", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", tc.endpoint)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.OTLPTarget != tc.wantTarget {
				t.Errorf("OTLPTarget = %q, want %q", cfg.OTLPTarget, tc.wantTarget)
			}
			if cfg.OTLPInsecure != tc.wantInsecure {
				t.Errorf("OTLPInsecure = %v, want %v", cfg.OTLPInsecure, tc.wantInsecure)
			}
		})
	}
}

func TestLoad_OTLPMalformedEndpoint(t *testing.T) {
	os.Clearenv()
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://[invalid")

	if _, err := Load(); err == nil || !strings.HasPrefix(err.Error(), "config: invalid OTEL_EXPORTER_OTLP_ENDPOINT") {
		t.Errorf("Load error = %v, want invalid endpoint", err)
	}
}
