package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in implementing the sorted-set subset
// of xredis.Client.
type MockRedisClient struct {
	mutex sync.Mutex
	zsets map[string]map[string]int64
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{zsets: make(map[string]map[string]int64)}
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, ok := m.zsets[key]
	return ok, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, k := range key {
		delete(m.zsets, k)
	}

	return nil
}

func (m *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.zsets[key] == nil {
		m.zsets[key] = make(map[string]int64)
	}

	m.zsets[key][member] += incr
	return nil
}

func (m *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	zs := m.sorted(key)
	if offset >= len(zs) {
		return nil, nil
	}

	zs = zs[offset:]
	if limit < len(zs) {
		zs = zs[:limit]
	}

	return zs, nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	for i, z := range m.sorted(key) {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (m *MockRedisClient) sorted(key string) []redis.Z {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	zs := []redis.Z{}
	for member, score := range m.zsets[key] {
		zs = append(zs, redis.Z{Member: member, Score: float64(score)})
	}

	sort.Slice(zs, func(i, j int) bool { return zs[i].Score > zs[j].Score })
	return zs
}
