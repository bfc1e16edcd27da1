package config

import (
	"strings"
	"time"
)

const (
	defaultMongoConnectTimeout = 10 * time.Second
	defaultMongoQueryTimeout   = 15 * time.Second
)

// MongoConfig contains the document store configuration.
type MongoConfig struct {
	URI            string        `env:"URI"             envDefault:"mongodb://localhost:27017"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
	QueryTimeout   time.Duration `env:"QUERY_TIMEOUT"   envDefault:"15s"`
	// TenantDatabase and TenantCollection locate the tenant directory.
	TenantDatabase   string `env:"TENANT_DATABASE"   envDefault:"asd_remus_qc"`
	TenantCollection string `env:"TENANT_COLLECTION" envDefault:"tenants"`
	// JobsCollection is the scan job collection inside each tenant database.
	JobsCollection string `env:"JOBS_COLLECTION" envDefault:"scan_jobs_asset_discovery"`
}

// Sanitize applies guardrails to MongoDB configuration values.
func (c *MongoConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultMongoConnectTimeout
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = defaultMongoQueryTimeout
	}
	c.TenantDatabase = strings.TrimSpace(c.TenantDatabase)
	c.TenantCollection = strings.TrimSpace(c.TenantCollection)
	c.JobsCollection = strings.TrimSpace(c.JobsCollection)
}

// RedisConfig contains Redis configuration. Redis only backs the tenant cache and is optional.
type RedisConfig struct {
	Enabled            bool     `env:"ENABLED"              envDefault:"false"`
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:""`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
	KeyPrefix          string   `env:"KEY_PREFIX"           envDefault:"iris:"`
}

// Sanitize applies guardrails to Redis configuration values.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	if c.DB < 0 {
		c.DB = 0
	}
	c.SentinelNodes = trimAll(c.SentinelNodes)
	c.ClusterNodes = trimAll(c.ClusterNodes)
}

// CacheConfig contains cache configuration (Redis-based).
type CacheConfig struct {
	// TenantTTL is the TTL for cached tenant directory entries.
	TenantTTL time.Duration `env:"CACHE_TENANT_TTL" envDefault:"1m"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.TenantTTL <= 0 {
		c.TenantTTL = time.Minute
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
