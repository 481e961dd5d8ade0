package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

type fakeEvictor struct {
	evicted int
	calls   int
}

func (f *fakeEvictor) EvictIdle(context.Context) int {
	f.calls++
	return f.evicted
}

type fakeSeeder struct {
	got []models.Product
	err error
}

func (f *fakeSeeder) Seed(_ context.Context, products []models.Product) (int64, error) {
	f.got = products
	return int64(len(products)), f.err
}

func TestDeviceEvictionJob(t *testing.T) {
	evictor := &fakeEvictor{evicted: 3}
	job, err := NewDeviceEvictionJob(logger.Nop(), evictor)
	require.NoError(t, err)
	require.Equal(t, "device_eviction", job.Name())
	require.NoError(t, job.Run(context.Background()))
	require.Equal(t, 1, evictor.calls)

	_, err = NewDeviceEvictionJob(logger.Nop(), nil)
	require.Error(t, err)
}

func TestCatalogSeedJob(t *testing.T) {
	seeder := &fakeSeeder{}
	products := []models.Product{{ID: "1"}, {ID: "2"}}
	job, err := NewCatalogSeedJob(logger.Nop(), seeder, func() []models.Product { return products })
	require.NoError(t, err)
	require.NoError(t, job.Run(context.Background()))
	require.Len(t, seeder.got, 2)

	seeder.err = errors.New("db down")
	require.ErrorContains(t, job.Run(context.Background()), "db down")
}
