package services

import (
	"context"
	"testing"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/constants"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository/memory"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func newCatalog(t *testing.T, cache *Cache) (*CatalogService, *memory.Store) {
	t.Helper()
	store := memory.New()
	catalog := NewCatalogService(CatalogServiceOptions{Store: store, Cache: cache, Logger: logger.Discard()})
	for _, in := range []struct {
		name      string
		price     float64
		available bool
	}{
		{"Desayuno buffet", 150, true},
		{"Masaje relajante", 600, true},
		{"Baño turco", 300, true},
		{"Traslado aeropuerto", 400, false},
	} {
		name, price, available := in.name, in.price, in.available
		_, err := catalog.Create(context.Background(), ServiceInput{Name: &name, Price: &price, Available: &available})
		require.NoError(t, err)
	}
	return catalog, store
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	cache := NewCache(rdb, 0)

	var got []models.Service
	found, err := cache.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, constants.CacheKeyServices, []models.Service{{ID: 7, Name: "Spa", Price: 80}}))
	assert.True(t, mr.Exists(constants.CacheKeyServices))
	assert.Equal(t, DefaultCacheTTL, mr.TTL(constants.CacheKeyServices))

	found, err = cache.Get(ctx, constants.CacheKeyServices, &got)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, got, 1)
	assert.Equal(t, "Spa", got[0].Name)
}

func TestCacheDeletePattern(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	cache := NewCache(rdb, 0)

	require.NoError(t, mr.Set(constants.CacheKeyRooms, "[]"))
	require.NoError(t, mr.Set(constants.CacheKeyRoomsPrefix+"floor:2", "[]"))
	require.NoError(t, mr.Set(constants.CacheKeyServices, "[]"))

	require.NoError(t, cache.DeletePattern(ctx, constants.CacheKeyRoomsPrefix+"*"))
	assert.False(t, mr.Exists(constants.CacheKeyRooms))
	assert.False(t, mr.Exists(constants.CacheKeyRoomsPrefix+"floor:2"))
	assert.True(t, mr.Exists(constants.CacheKeyServices))
}

func TestNilCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(nil, 0)

	var got []models.Service
	found, err := cache.Get(ctx, constants.CacheKeyServices, &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, cache.Set(ctx, constants.CacheKeyServices, got))
	assert.NoError(t, cache.Delete(ctx, constants.CacheKeyServices))
	assert.NoError(t, cache.DeletePattern(ctx, "*"))
}

func TestCatalogListIsCachedAndInvalidated(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newRedis(t)
	catalog, store := newCatalog(t, NewCache(rdb, 0))

	list, err := catalog.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 4)
	assert.True(t, mr.Exists(constants.CacheKeyServices))

	// a write that bypasses the service is not visible until the key expires
	require.NoError(t, store.Services().Create(ctx, &models.Service{Name: "Cena", Price: 250, Available: true}))
	list, err = catalog.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	price := 175.0
	_, err = catalog.Update(ctx, 1, ServiceInput{Price: &price})
	require.NoError(t, err)
	assert.False(t, mr.Exists(constants.CacheKeyServices))

	list, err = catalog.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestCatalogHidesUnavailableFromClients(t *testing.T) {
	catalog, _ := newCatalog(t, NewCache(nil, 0))

	list, err := catalog.List(context.Background(), client)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	for _, svc := range list {
		assert.True(t, svc.Available, svc.Name)
	}
}

func TestCatalogSearch(t *testing.T) {
	catalog, _ := newCatalog(t, NewCache(nil, 0))
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"accents ignored", "bano", []string{"Baño turco"}},
		{"typo in a word", "masage", []string{"Masaje relajante"}},
		{"case insensitive", "DESAYUNO", []string{"Desayuno buffet"}},
		{"unavailable hidden", "traslado", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := catalog.Search(ctx, client, tt.query)
			require.NoError(t, err)
			names := make([]string, 0, len(res.Services))
			for _, svc := range res.Services {
				names = append(names, svc.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	res, err := catalog.Search(ctx, admin, "")
	require.NoError(t, err)
	assert.Len(t, res.Services, 4)
}

func TestCatalogValidation(t *testing.T) {
	catalog, _ := newCatalog(t, NewCache(nil, 0))
	ctx := context.Background()

	blank := "  "
	_, err := catalog.Create(ctx, ServiceInput{Name: &blank})
	requireCode(t, err, "REQUIRED_FIELD")

	name, negative := "Late checkout", -1.0
	_, err = catalog.Create(ctx, ServiceInput{Name: &name, Price: &negative})
	requireCode(t, err, "INVALID_AMOUNT")

	_, err = catalog.Get(ctx, 99)
	requireCode(t, err, "DB_NOT_FOUND")
}

func TestFuzzyContains(t *testing.T) {
	assert.True(t, fuzzyContains("Jacuzzi privado", "jacuzi"))
	assert.True(t, fuzzyContains("Vista al mar", "MAR"))
	assert.True(t, fuzzyContains("anything", ""))
	assert.False(t, fuzzyContains("Wifi", "balcon"))
}
