package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Amxn-2/Employee-Management/internal/domain"
	"github.com/Amxn-2/Employee-Management/internal/repository"
)

const studentKeyPrefix = "student:uuid:"

// RedisStudentCache implements StudentCache backed by Redis. It fronts the
// legacy X-Student-UUID lookup path with a short TTL; accounts are immutable
// after registration, so a stale entry can only repeat a prior answer.
type RedisStudentCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var _ repository.StudentCache = (*RedisStudentCache)(nil)

// NewRedisStudentCache constructs a Redis-backed student cache.
func NewRedisStudentCache(client redis.UniversalClient, ttl time.Duration) *RedisStudentCache {
	return &RedisStudentCache{client: client, ttl: ttl}
}

// GetByUUID loads a cached student; a miss returns (nil, nil).
func (c *RedisStudentCache) GetByUUID(ctx context.Context, uuid string) (*domain.Student, error) {
	bytes, err := c.client.Get(ctx, studentKeyPrefix+uuid).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("load cached student: %w", err)
	}
	var student domain.Student
	if err := json.Unmarshal(bytes, &student); err != nil {
		return nil, fmt.Errorf("decode cached student: %w", err)
	}
	return &student, nil
}

// Save stores the student under its UUID with the configured TTL.
func (c *RedisStudentCache) Save(ctx context.Context, student domain.Student) error {
	payload, err := json.Marshal(student)
	if err != nil {
		return fmt.Errorf("marshal student: %w", err)
	}
	if err := c.client.Set(ctx, studentKeyPrefix+student.UUID, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("persist cached student: %w", err)
	}
	return nil
}
