package cron

import (
	"context"
	"errors"

	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

type idleEvictor interface {
	EvictIdle(ctx context.Context) int
}

// DeviceEvictionJob drops device stores that have gone idle.
type DeviceEvictionJob struct {
	logg     *logger.Logger
	registry idleEvictor
}

func NewDeviceEvictionJob(logg *logger.Logger, registry idleEvictor) (*DeviceEvictionJob, error) {
	if logg == nil {
		return nil, errors.New("logger required")
	}
	if registry == nil {
		return nil, errors.New("store registry required")
	}
	return &DeviceEvictionJob{logg: logg, registry: registry}, nil
}

func (j *DeviceEvictionJob) Name() string { return "device_eviction" }

func (j *DeviceEvictionJob) Run(ctx context.Context) error {
	if n := j.registry.EvictIdle(ctx); n > 0 {
		j.logg.Info(j.logg.WithField(ctx, "evicted", n), "idle device stores evicted")
	}
	return nil
}
