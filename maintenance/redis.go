// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package maintenance

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/acertaexpress/fleetwatch/context"
	"github.com/acertaexpress/fleetwatch/model"
)

// RedisHistory resolves last-service markers from a shared Redis instance,
// for deployments where a workshop system records completed services there.
// Key shape: service:last:{deviceId}:{serviceType} -> odometer km.
type RedisHistory struct {
	client *redis.Client
}

func NewRedisHistory(ctx context.Context, addr, password string, db int) (*RedisHistory, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisHistory{client: client}, nil
}

func (h *RedisHistory) Close() error {
	return h.client.Close()
}

func (h *RedisHistory) LastService(ctx context.Context, device model.Device, rule model.Maintenance) (float64, error) {
	key := markerKey(device.Id, rule.Type)
	val, err := h.client.Get(ctx, key).Float64()
	if err == redis.Nil {
		// No marker recorded yet: same default as the attribute policy.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s failed: %w", key, err)
	}
	return val, nil
}

// RecordService stores the odometer reading of a completed service.
func (h *RedisHistory) RecordService(ctx context.Context, deviceId int, serviceType string, odometerKm float64) error {
	return h.client.Set(ctx, markerKey(deviceId, serviceType), odometerKm, 0).Err()
}

func markerKey(deviceId int, serviceType string) string {
	return fmt.Sprintf("service:last:%d:%s", deviceId, serviceType)
}
