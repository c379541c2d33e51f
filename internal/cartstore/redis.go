// Package cartstore keeps saved carts in Redis.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
)

const keyPrefix = "saved-cart:"

// KV is the subset of the Redis client the store uses.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Redis stores each cart as a JSON string that expires ttl after the last
// save. A zero ttl keeps carts forever.
type Redis struct {
	kv  KV
	ttl time.Duration
}

func NewRedis(kv KV, ttl time.Duration) *Redis {
	return &Redis{kv: kv, ttl: ttl}
}

// NewClient builds a client with short timeouts and a small warm pool.
func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		PoolSize:     50,
		MinIdleConns: 5,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
		DialTimeout:  time.Second,
	})
}

func key(userID primitive.ObjectID) string {
	return keyPrefix + userID.Hex()
}

func (r *Redis) SaveCart(ctx context.Context, cart models.SavedCart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, key(cart.UserID), data, r.ttl).Err()
}

func (r *Redis) FindCart(ctx context.Context, userID primitive.ObjectID) (models.SavedCart, error) {
	data, err := r.kv.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.SavedCart{}, repository.ErrNotFound
	}
	if err != nil {
		return models.SavedCart{}, err
	}

	var cart models.SavedCart
	if err := json.Unmarshal(data, &cart); err != nil {
		return models.SavedCart{}, err
	}
	return cart, nil
}
