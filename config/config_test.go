package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/target/iris/internal/domain/model"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.HTTP.Addr)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Fatalf("unexpected mongo uri %q", cfg.Mongo.URI)
	}
	if cfg.Mongo.TenantDatabase != "asd_remus_qc" || cfg.Mongo.TenantCollection != "tenants" {
		t.Fatalf("unexpected tenant directory %s.%s", cfg.Mongo.TenantDatabase, cfg.Mongo.TenantCollection)
	}
	if cfg.Mongo.JobsCollection != "scan_jobs_asset_discovery" {
		t.Fatalf("unexpected jobs collection %q", cfg.Mongo.JobsCollection)
	}
	if cfg.Redis.Enabled {
		t.Fatal("expected redis to be disabled by default")
	}
	if cfg.Jobs.PageSizeDefault != 10 || cfg.Jobs.PageSizeMax != 500 {
		t.Fatalf("unexpected page sizes %d/%d", cfg.Jobs.PageSizeDefault, cfg.Jobs.PageSizeMax)
	}
	if cfg.Restart.URL != "http://we.in.se/scan_all" || cfg.Restart.Timeout != 10*time.Second {
		t.Fatalf("unexpected restart config %#v", cfg.Restart)
	}
	if cfg.Observability.Metrics.Prefix != "iris" {
		t.Fatalf("unexpected metrics prefix %q", cfg.Observability.Metrics.Prefix)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("MONGO_QUERY_TIMEOUT", "3s")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_URI", "redis:6379")
	t.Setenv("REDIS_SENTINEL_NODES", "s1:26379, s2:26379")
	t.Setenv("CACHE_TENANT_TTL", "5m")
	t.Setenv("RESTART_URL", "http://restart.internal/scan")
	t.Setenv("RESTART_BODY_EXPR", "{id: id}")
	t.Setenv("PAGE_SIZE_DEFAULT", "25")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.HTTP.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level to be lowercased, got %q", cfg.LogLevel)
	}
	if cfg.Mongo.URI != "mongodb://mongo:27017" || cfg.Mongo.QueryTimeout != 3*time.Second {
		t.Fatalf("unexpected mongo config %#v", cfg.Mongo)
	}
	if !cfg.Redis.Enabled || cfg.Redis.URI != "redis:6379" {
		t.Fatalf("unexpected redis config %#v", cfg.Redis)
	}
	if !reflect.DeepEqual(cfg.Redis.SentinelNodes, []string{"s1:26379", "s2:26379"}) {
		t.Fatalf("unexpected sentinel nodes %#v", cfg.Redis.SentinelNodes)
	}
	if cfg.Cache.TenantTTL != 5*time.Minute {
		t.Fatalf("unexpected tenant ttl %v", cfg.Cache.TenantTTL)
	}
	if cfg.Restart.URL != "http://restart.internal/scan" || cfg.Restart.BodyExpr != "{id: id}" {
		t.Fatalf("unexpected restart config %#v", cfg.Restart)
	}
	if cfg.Jobs.PageSizeDefault != 25 {
		t.Fatalf("unexpected default page size %d", cfg.Jobs.PageSizeDefault)
	}
}

func TestAppConfig_SanitizeLogLevel(t *testing.T) {
	cfg := AppConfig{LogLevel: "verbose"}
	cfg.Sanitize()
	if cfg.LogLevel != "info" {
		t.Fatalf("expected unknown level to fall back to info, got %q", cfg.LogLevel)
	}
}

func TestJobsConfig_Sanitize(t *testing.T) {
	cfg := JobsConfig{PageSizeDefault: 900, PageSizeMax: 0}
	cfg.Sanitize()
	if cfg.PageSizeMax != 500 {
		t.Fatalf("expected max to fall back to default, got %d", cfg.PageSizeMax)
	}
	if cfg.PageSizeDefault != 500 {
		t.Fatalf("expected default to be clamped to max, got %d", cfg.PageSizeDefault)
	}
}

func TestJobsConfig_StatusBuckets(t *testing.T) {
	tests := []struct {
		name    string
		cfg     JobsConfig
		want    model.StatusBuckets
		wantErr bool
	}{
		{name: "default", cfg: JobsConfig{}, want: model.DefaultStatusBuckets()},
		{name: "legacy aliases", cfg: JobsConfig{LegacyAliases: true}, want: model.LegacyStatusBuckets()},
		{
			name: "override wins",
			cfg:  JobsConfig{LegacyAliases: true, Buckets: "failed=failed;completed=completed;running=running"},
			want: model.DefaultStatusBuckets(),
		},
		{name: "malformed override", cfg: JobsConfig{Buckets: "nonsense"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.StatusBuckets()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if vErr := tt.cfg.Validate(); vErr == nil {
					t.Fatal("expected Validate to report the malformed override")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestRestartConfig_Sanitize(t *testing.T) {
	cfg := RestartConfig{URL: "  ", Timeout: -1, SuccessStatus: 42, BodyExpr: "  id "}
	cfg.Sanitize()

	if cfg.URL != defaultRestartURL {
		t.Fatalf("expected default url, got %q", cfg.URL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.Timeout)
	}
	if cfg.SuccessStatus != 200 {
		t.Fatalf("expected default status, got %d", cfg.SuccessStatus)
	}
	if cfg.BodyExpr != "id" {
		t.Fatalf("expected trimmed body expression, got %q", cfg.BodyExpr)
	}
}

func TestRedisConfig_Sanitize(t *testing.T) {
	cfg := RedisConfig{URI: " redis:6379 ", DB: -3, ClusterNodes: []string{" a:1 ", "", "b:2"}}
	cfg.Sanitize()

	if cfg.URI != "redis:6379" || cfg.DB != 0 {
		t.Fatalf("unexpected redis config %#v", cfg)
	}
	if !reflect.DeepEqual(cfg.ClusterNodes, []string{"a:1", "b:2"}) {
		t.Fatalf("unexpected cluster nodes %#v", cfg.ClusterNodes)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	var cfg HTTPConfig
	cfg.Sanitize()
	if cfg.Addr != ":8080" || cfg.WriteTimeout != 30*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected http defaults %#v", cfg)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
		Prefix:        ".iris.api.",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
	if cfg.Prefix != "iris.api" {
		t.Fatalf("expected prefix dots to be trimmed, got %q", cfg.Prefix)
	}
}
