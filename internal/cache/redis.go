// Package cache mirrors showtime seat availability into Redis so pollers
// and downstream displays can read the counters without going through the
// API. The in-memory repositories stay the source of truth.
package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var ctx = context.Background()

type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{Client: client}, nil
}

// Init wipes the database and seeds the seat counters for the given
// showtimes.
func (r *RedisCache) Init(showtimeSeats map[uint]int) error {
	if err := r.Client.FlushDB(ctx).Err(); err != nil {
		return err
	}
	for showtimeID, seats := range showtimeSeats {
		if err := r.SetSeatsRemaining(showtimeID, seats); err != nil {
			return err
		}
	}
	return nil
}

func (r *RedisCache) SetSeatsRemaining(showtimeID uint, seats int) error {
	key := MakeShowtimeSeatsRemainKey(showtimeID)
	return r.Client.Set(ctx, key, seats, 0).Err()
}

func (r *RedisCache) SeatsRemaining(showtimeID uint) (int, error) {
	key := MakeShowtimeSeatsRemainKey(showtimeID)
	return r.Client.Get(ctx, key).Int()
}

func (r *RedisCache) DeleteSeatsRemaining(showtimeID uint) error {
	key := MakeShowtimeSeatsRemainKey(showtimeID)
	return r.Client.Del(ctx, key).Err()
}

func (r *RedisCache) Set(key string, value any, expiration time.Duration) error {
	return r.Client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisCache) Close() error {
	return r.Client.Close()
}
