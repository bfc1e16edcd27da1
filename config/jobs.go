package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/target/iris/internal/domain/model"
)

const (
	defaultPageSize    = 10
	defaultMaxPageSize = 500
	defaultRestartURL  = "http://we.in.se/scan_all"
)

// JobsConfig controls how scan jobs are bucketed and paginated.
type JobsConfig struct {
	// LegacyAliases maps success to completed and in_progress to running.
	LegacyAliases bool `env:"STATUS_LEGACY_ALIASES" envDefault:"false"`
	// Buckets overrides the bucket table, e.g. "failed=failed;completed=completed|success".
	Buckets string `env:"STATUS_BUCKETS" envDefault:""`

	PageSizeDefault int `env:"PAGE_SIZE_DEFAULT" envDefault:"10"`
	PageSizeMax     int `env:"PAGE_SIZE_MAX"     envDefault:"500"`
}

// Sanitize applies guardrails to pagination values.
func (c *JobsConfig) Sanitize() {
	c.Buckets = strings.TrimSpace(c.Buckets)
	if c.PageSizeMax < 1 {
		c.PageSizeMax = defaultMaxPageSize
	}
	if c.PageSizeDefault < 1 {
		c.PageSizeDefault = defaultPageSize
	}
	if c.PageSizeDefault > c.PageSizeMax {
		c.PageSizeDefault = c.PageSizeMax
	}
}

// Validate checks that the bucket override parses.
func (c *JobsConfig) Validate() error {
	if _, err := c.StatusBuckets(); err != nil {
		return fmt.Errorf("STATUS_BUCKETS: %w", err)
	}
	return nil
}

// StatusBuckets resolves the bucket table. An explicit override wins over LegacyAliases.
func (c *JobsConfig) StatusBuckets() (model.StatusBuckets, error) {
	if c.Buckets != "" {
		var b model.StatusBuckets
		if err := b.UnmarshalText([]byte(c.Buckets)); err != nil {
			return nil, err
		}
		return b, nil
	}
	if c.LegacyAliases {
		return model.LegacyStatusBuckets(), nil
	}
	return model.DefaultStatusBuckets(), nil
}

// RestartConfig configures the outbound restart trigger.
type RestartConfig struct {
	URL           string        `env:"URL"            envDefault:"http://we.in.se/scan_all"`
	Timeout       time.Duration `env:"TIMEOUT"        envDefault:"10s"`
	SuccessStatus int           `env:"SUCCESS_STATUS" envDefault:"200"`
	// BodyExpr is a JMESPath expression over {"id","tenant_id","domain"}; empty sends no body.
	BodyExpr string `env:"BODY_EXPR" envDefault:""`
}

// Sanitize applies guardrails to restart trigger values.
func (c *RestartConfig) Sanitize() {
	c.URL = strings.TrimSpace(c.URL)
	if c.URL == "" {
		c.URL = defaultRestartURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.SuccessStatus < 100 || c.SuccessStatus > 599 {
		c.SuccessStatus = http.StatusOK
	}
	c.BodyExpr = strings.TrimSpace(c.BodyExpr)
}
