// Package testutil provides shared helpers for integration tests against MongoDB and Redis.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestingTB is the subset of testing.TB used by the helpers.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Skipf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
	Cleanup(func())
}

// DefaultTestMongoURI is used when TEST_MONGO_URI is not set.
// Defaults to port 57017 (local test Mongo from docker-compose test profile).
const DefaultTestMongoURI = "mongodb://localhost:57017"

// SetupTestMongo connects to the test MongoDB deployment.
// Tests are skipped when it is unreachable unless TEST_REQUIRE_MONGO or TEST_REQUIRE_INFRA is set.
// The client is disconnected on test cleanup.
func SetupTestMongo(t TestingTB) *mongo.Client {
	t.Helper()

	uri := getEnvOrDefault("TEST_MONGO_URI", DefaultTestMongoURI)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		skipOrFail(t, requireMongo(), "MongoDB not available for testing: "+err.Error())
		return nil
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		skipOrFail(t, requireMongo(), "MongoDB not available for testing at "+uri+": "+err.Error())
		return nil
	}

	t.Cleanup(func() {
		if derr := client.Disconnect(context.Background()); derr != nil {
			t.Logf("warning: mongo disconnect failed: %v", derr)
		}
	})
	return client
}

// EphemeralDatabase returns a unique database name and drops it on cleanup.
func EphemeralDatabase(t TestingTB, client *mongo.Client, prefix string) string {
	t.Helper()
	name := prefix + "_" + RandomSuffix()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Database(name).Drop(ctx); err != nil {
			t.Logf("warning: drop test database %s: %v", name, err)
		}
	})
	return name
}

// SetupTestRedis connects to the test Redis instance and flushes the selected DB.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr := getEnvOrDefault("TEST_REDIS_ADDR", "localhost:56379")
	db := 1
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			db = i
		}
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: failed to close redis client after ping error: %v", cerr)
		}
		skipOrFail(t, requireRedis(), "Redis not available for testing at "+addr+": "+err.Error())
		return nil
	}

	client.FlushDB(ctx)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// RandomSuffix returns a short random hex string for unique names.
func RandomSuffix() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b)
}

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// StringPtr returns a pointer to the given string value.
func StringPtr(s string) *string {
	return &s
}

// Int64Ptr returns a pointer to the given int64 value.
func Int64Ptr(i int64) *int64 {
	return &i
}

// TimePtr returns a pointer to the given time value.
func TimePtr(t time.Time) *time.Time {
	return &t
}

func skipOrFail(t TestingTB, required bool, msg string) {
	t.Helper()
	if required {
		t.Fatal(msg)
	}
	t.Skip(msg)
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

func requireMongo() bool { return envBool("TEST_REQUIRE_MONGO") || envBool("TEST_REQUIRE_INFRA") }
func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") }
