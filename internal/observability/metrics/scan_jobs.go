// Package metrics emits the standard query and restart metrics of the scan job monitor.
package metrics

import (
	"maps"
	"strconv"
	"time"

	obserrors "github.com/target/iris/internal/observability/errors"
	"github.com/target/iris/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultDegraded = "degraded"
	ResultNoop     = "noop"
)

// Restart scopes.
const (
	ScopeSingle = "single"
	ScopeBulk   = "bulk"
)

// QueryMetric captures one listing call.
type QueryMetric struct {
	Bucket   string
	Result   string
	Items    int
	Duration time.Duration
	Err      error
}

// EmitQuery emits jobs.query, jobs.query.items and jobs.query.duration.
func EmitQuery(sink statsd.Sink, in QueryMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"bucket": in.Bucket,
		"result": in.Result,
	}
	addErrorClass(tags, in.Result, in.Err)

	sink.Count("jobs.query", 1, tags)
	if in.Result == ResultSuccess {
		sink.Gauge("jobs.query.items", float64(in.Items), CloneTags(tags))
	}
	if in.Duration > 0 {
		sink.Timing("jobs.query.duration", in.Duration, CloneTags(tags))
	}
}

// RestartMetric captures a single restart or a bulk restart run.
type RestartMetric struct {
	Scope     string
	Result    string
	Attempted int
	Succeeded int
	Duration  time.Duration
	Err       error
}

// EmitRestart emits jobs.restart and, for bulk runs, the attempted and succeeded counts.
func EmitRestart(sink statsd.Sink, in RestartMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"scope":  in.Scope,
		"result": in.Result,
	}
	addErrorClass(tags, in.Result, in.Err)

	sink.Count("jobs.restart", 1, tags)
	if in.Scope == ScopeBulk {
		sink.Count("jobs.restart.attempted", int64(in.Attempted), CloneTags(tags))
		sink.Count("jobs.restart.succeeded", int64(in.Succeeded), CloneTags(tags))
	}
	if in.Duration > 0 {
		sink.Timing("jobs.restart.duration", in.Duration, CloneTags(tags))
	}
}

// EmitTenantCache counts tenant directory cache lookups.
func EmitTenantCache(sink statsd.Sink, hit bool) {
	if sink == nil {
		return
	}
	sink.Count("tenants.cache", 1, map[string]string{"hit": strconv.FormatBool(hit)})
}

func addErrorClass(tags map[string]string, result string, err error) {
	if err == nil || result == ResultSuccess {
		return
	}
	if class := obserrors.Classify(err); class != "" {
		tags["error_class"] = class
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}
