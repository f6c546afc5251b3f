package service

import (
	"context"
	"testing"

	"rag-postgres-be/internal/pkg/apperrors"
	"rag-postgres-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedMissThenHit(t *testing.T) {
	provider := &fakeProvider{}
	cacheRepo := newFakeCacheRepo()
	svc := NewEmbeddingService(provider, cacheRepo, nil, nopLogger{}, true)

	first, err := svc.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	require.NotEmpty(t, first)
	assert.Equal(t, 1, provider.callCount())

	second, err := svc.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// The hit came from the cache, not a second model call
	assert.Equal(t, 1, provider.callCount())

	hash := embedding.HashText("hello world")
	assert.Equal(t, 2, cacheRepo.hitCount(hash))
}

func TestEmbedCacheKeyIsContentSensitive(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewEmbeddingService(provider, newFakeCacheRepo(), nil, nopLogger{}, true)

	_, err := svc.Embed(context.Background(), "Hello")
	require.NoError(t, err)
	_, err = svc.Embed(context.Background(), "hello")
	require.NoError(t, err)
	_, err = svc.Embed(context.Background(), "hello ")
	require.NoError(t, err)

	assert.Equal(t, 3, provider.callCount())
}

func TestEmbedCacheDisabledSkipsRepo(t *testing.T) {
	provider := &fakeProvider{}
	cacheRepo := newFakeCacheRepo()
	svc := NewEmbeddingService(provider, cacheRepo, nil, nopLogger{}, false)

	_, err := svc.Embed(context.Background(), "no caching")
	require.NoError(t, err)
	_, err = svc.Embed(context.Background(), "no caching")
	require.NoError(t, err)

	assert.Equal(t, 2, provider.callCount())
	count, _ := cacheRepo.Count(context.Background())
	assert.Zero(t, count)
}

func TestEmbedLookupFailureFallsThroughToModel(t *testing.T) {
	provider := &fakeProvider{}
	cacheRepo := newFakeCacheRepo()
	cacheRepo.lookupErr = errStoreDown
	svc := NewEmbeddingService(provider, cacheRepo, nil, nopLogger{}, true)

	vec, err := svc.Embed(context.Background(), "degraded cache")
	require.NoError(t, err)
	assert.NotEmpty(t, vec)
	assert.Equal(t, 1, provider.callCount())
}

func TestEmbedLookupFailureServedByHotCache(t *testing.T) {
	provider := &fakeProvider{}
	cacheRepo := newFakeCacheRepo()
	hotCache := newFakeHotCache()
	svc := NewEmbeddingService(provider, cacheRepo, hotCache, nopLogger{}, true)

	// Warm both tiers
	first, err := svc.Embed(context.Background(), "resilient")
	require.NoError(t, err)

	// Postgres goes away; the hot tier answers without a model call
	cacheRepo.lookupErr = errStoreDown
	second, err := svc.Embed(context.Background(), "resilient")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.callCount())
}

func TestEmbedStoreFailureIsNonFatal(t *testing.T) {
	provider := &fakeProvider{}
	cacheRepo := newFakeCacheRepo()
	cacheRepo.storeErr = errStoreDown
	svc := NewEmbeddingService(provider, cacheRepo, nil, nopLogger{}, true)

	vec, err := svc.Embed(context.Background(), "still works")
	require.NoError(t, err)
	assert.NotEmpty(t, vec)
}

func TestEmbedProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errStoreDown}
	svc := NewEmbeddingService(provider, newFakeCacheRepo(), nil, nopLogger{}, true)

	_, err := svc.Embed(context.Background(), "unreachable model")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindEmbeddingCapability, apperrors.KindOf(err))
}
