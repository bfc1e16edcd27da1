package data

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/target/iris/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// timestampLayouts are tried in order for string timestamps. Layouts without a zone are read as UTC.
var timestampLayouts = []string{ //nolint:gochecknoglobals // read-only parse table
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999-0700",
}

// NormalizeDocument converts a raw scan job document into a ScanJobRecord.
// It reports false for documents that cannot be represented (nil or missing _id).
// Missing or malformed optional fields become zero values or nil; they never fail the record.
func NormalizeDocument(doc bson.M) (*model.ScanJobRecord, bool) {
	if doc == nil {
		return nil, false
	}
	rawID, ok := doc["_id"]
	if !ok || rawID == nil {
		return nil, false
	}

	rec := &model.ScanJobRecord{
		ID:                 stringValue(rawID),
		TenantID:           stringValue(doc["tenant_id"]),
		Domain:             stringValue(doc["domain"]),
		Status:             model.JobStatusUnknown,
		CreatedAt:          timeValue(doc["created_at"]),
		CompletedAt:        timeValue(doc["completed_at"]),
		ErrorMessage:       optionalString(doc["error_message"]),
		DocumentsProcessed: intValue(doc["documents_processed"]),
	}
	if latest, isBool := doc["is_latest"].(bool); isBool {
		rec.IsLatest = latest
	}
	if status := stringValue(doc["status"]); status != "" {
		rec.Status = model.JobStatus(status)
	}
	if d, ok := model.ElapsedSeconds(rec.CreatedAt, rec.CompletedAt); ok {
		rec.Duration = &d
	}

	return rec, true
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case primitive.ObjectID:
		return t.Hex()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func optionalString(v any) *string {
	if v == nil {
		return nil
	}
	s := stringValue(v)
	return &s
}

func timeValue(v any) *time.Time {
	var t time.Time
	switch raw := v.(type) {
	case primitive.DateTime:
		t = raw.Time()
	case time.Time:
		t = raw
	case primitive.Timestamp:
		t = time.Unix(int64(raw.T), 0)
	case string:
		parsed, ok := parseTimestamp(raw)
		if !ok {
			return nil
		}
		t = parsed
	default:
		return nil
	}
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func intValue(v any) *int64 {
	var n int64
	switch raw := v.(type) {
	case int32:
		n = int64(raw)
	case int64:
		n = raw
	case int:
		n = int64(raw)
	case float64:
		if math.IsNaN(raw) || math.IsInf(raw, 0) {
			return nil
		}
		n = int64(raw)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(raw.String(), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		n = int64(f)
	default:
		return nil
	}
	return &n
}
