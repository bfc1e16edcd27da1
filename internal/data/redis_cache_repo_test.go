package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/iris/internal/testutil"
)

func TestRedisCacheRepo_Set_Get_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	repo := NewRedisCacheRepo(client, "iris:test:")
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		value := []byte(`{"id":"t1","name":"acme"}`)
		ttl := 5 * time.Minute

		require.NoError(t, repo.Set(ctx, "tenant:acme", value, ttl))

		result, err := repo.Get(ctx, "tenant:acme")
		require.NoError(t, err)
		assert.Equal(t, value, result)

		actualTTL := client.TTL(ctx, "iris:test:tenant:acme").Val()
		assert.True(t, actualTTL > 0 && actualTTL <= ttl)
	})

	t.Run("keys are prefixed", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "prefixed", []byte("v"), time.Minute))

		raw, err := client.Get(ctx, "iris:test:prefixed").Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), raw)

		assert.Zero(t, client.Exists(ctx, "prefixed").Val())
	})

	t.Run("get non-existent key", func(t *testing.T) {
		result, err := repo.Get(ctx, "non:existent:key")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("delete existing key", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "to-delete", []byte("x"), time.Minute))

		deleted, err := repo.Delete(ctx, "to-delete")
		require.NoError(t, err)
		assert.True(t, deleted)

		result, err := repo.Get(ctx, "to-delete")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("delete non-existent key", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "never-set")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestRedisCacheRepo_EmptyKey(t *testing.T) {
	repo := NewRedisCacheRepo(nil, "iris:")
	ctx := context.Background()

	err := repo.Set(ctx, "", []byte("x"), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key cannot be empty")

	_, err = repo.Get(ctx, "")
	require.Error(t, err)

	_, err = repo.Delete(ctx, "")
	require.Error(t, err)
}
