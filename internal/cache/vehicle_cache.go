// Package cache keeps a short-lived redis cache in front of the vehicle
// lookup queries (plate, chassis, QR code). The cache is best-effort: any
// redis failure falls through to postgres and is never reported as a missing
// vehicle.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fleet-service/internal/config"
	"fleet-service/internal/model"
)

type VehicleCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// New returns a cache backed by the configured redis, or nil when no redis
// address is configured. A nil *VehicleCache is safe to use and caches
// nothing.
func New(cfg config.RedisConfig, log zerolog.Logger) *VehicleCache {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &VehicleCache{client: client, ttl: cfg.CacheTTL, log: log}
}

func key(companyID, kind, value string) string {
	return fmt.Sprintf("vehicle:%s:%s:%s", companyID, kind, value)
}

func (c *VehicleCache) Get(ctx context.Context, companyID, kind, value string) (*model.Vehicle, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key(companyID, kind, value)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("vehicle cache read failed")
		}
		return nil, false
	}
	var vehicle model.Vehicle
	if err := json.Unmarshal(raw, &vehicle); err != nil {
		return nil, false
	}
	return &vehicle, true
}

func (c *VehicleCache) Set(ctx context.Context, companyID, kind, value string, vehicle *model.Vehicle) {
	if c == nil || vehicle == nil {
		return
	}
	raw, err := json.Marshal(vehicle)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(companyID, kind, value), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("vehicle cache write failed")
	}
}

// Invalidate drops every cached lookup key of a vehicle. Called after
// updates that change status or contract binding.
func (c *VehicleCache) Invalidate(ctx context.Context, vehicle *model.Vehicle) {
	if c == nil || vehicle == nil {
		return
	}
	companyID := vehicle.CompanyID.String()
	keys := []string{
		key(companyID, "plate", vehicle.LicensePlate),
		key(companyID, "chassis", vehicle.Chassis),
	}
	if vehicle.QRCode != "" {
		keys = append(keys, key(companyID, "qr", vehicle.QRCode))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("vehicle cache invalidation failed")
	}
}

func (c *VehicleCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
