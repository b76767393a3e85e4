package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic-appointment/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefixes for the availability cache
	RedisAvailabilityVersionPrefix = "availability:version:"
	RedisAvailabilitySlotsPrefix   = "availability:slots:"

	// Timeout for individual Redis operations
	redisCacheTimeout = 2 * time.Second

	// Version keys outlive any slot entry written under them
	versionKeyTTL = 7 * 24 * time.Hour
)

// AvailabilityCache keeps computed slot lists per doctor and date.
//
// Every entry is keyed by the doctor's current version. Invalidate bumps
// the version, so entries computed before a booking, cancellation or
// schedule change are never read again and simply expire. A nil cache or
// an unreachable Redis behaves as a permanent miss.
type AvailabilityCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewAvailabilityCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Lookup returns the doctor's current version and, on a hit, the cached
// slots. The version must be passed back to Store.
func (c *AvailabilityCache) Lookup(ctx context.Context, doctorID uuid.UUID, date time.Time) (int64, []entity.ClockTime, bool) {
	if c == nil || c.ttl <= 0 {
		return 0, nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	version, err := c.redisClient.Get(ctx, versionKey(doctorID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warnf("Failed to read availability version for doctor %s: %+v", doctorID, err)
		return 0, nil, false
	}

	raw, err := c.redisClient.Get(ctx, slotsKey(doctorID, version, date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read cached slots for doctor %s: %+v", doctorID, err)
		}
		return version, nil, false
	}

	var slots []entity.ClockTime
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warnf("Discarding corrupt cached slots for doctor %s: %+v", doctorID, err)
		return version, nil, false
	}

	c.log.Debugf("Availability cache hit: doctor=%s date=%s version=%d", doctorID, date.Format(entity.DateLayout), version)
	return version, slots, true
}

// Store saves slots under version. Failures are logged and swallowed.
func (c *AvailabilityCache) Store(ctx context.Context, doctorID uuid.UUID, version int64, date time.Time, slots []entity.ClockTime) {
	if c == nil || c.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		c.log.Warnf("Failed to encode slots for doctor %s: %+v", doctorID, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := c.redisClient.Set(ctx, slotsKey(doctorID, version, date), raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to cache slots for doctor %s: %+v", doctorID, err)
	}
}

// Invalidate makes every cached entry of the doctor unreachable.
func (c *AvailabilityCache) Invalidate(ctx context.Context, doctorID uuid.UUID) {
	if c == nil {
		return
	}

	// Detached from the request so a cancelled client cannot leave stale slots
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), redisCacheTimeout)
	defer cancel()

	key := versionKey(doctorID)
	pipe := c.redisClient.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, versionKeyTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warnf("Failed to invalidate availability cache for doctor %s: %+v", doctorID, err)
		return
	}

	c.log.Debugf("Invalidated availability cache for doctor %s", doctorID)
}

func versionKey(doctorID uuid.UUID) string {
	return RedisAvailabilityVersionPrefix + doctorID.String()
}

func slotsKey(doctorID uuid.UUID, version int64, date time.Time) string {
	return fmt.Sprintf("%s%s:%d:%s", RedisAvailabilitySlotsPrefix, doctorID, version, date.Format(entity.DateLayout))
}
