package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"flaskr/internal/models"

	"github.com/go-redis/redis/v8"
)

// RedisList stores each entry as a JSON document in a Redis list.
type RedisList struct {
	client *redis.Client
	key    string
}

func NewRedisList(client *redis.Client, key string) *RedisList {
	return &RedisList{client: client, key: key}
}

// DialRedis connects to the server at url and checks it answers PING.
func DialRedis(ctx context.Context, url string, key string) (*RedisList, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisList(client, key), nil
}

func (l *RedisList) Append(ctx context.Context, e models.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := l.client.RPush(ctx, l.key, data).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", l.key, err)
	}
	return nil
}

func (l *RedisList) All(ctx context.Context) ([]models.Entry, error) {
	values, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", l.key, err)
	}

	entries := make([]models.Entry, 0, len(values))
	for i, v := range values {
		var e models.Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", l.key, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *RedisList) Close() error {
	return l.client.Close()
}
