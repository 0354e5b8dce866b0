package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"flavorcraft/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
)

func testManager(maxSize int) *Manager {
	return NewManager(&config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	})
}

func TestManagerDisabled(t *testing.T) {
	m := NewManager(&config.Config{})
	assert.Nil(t, m)

	// nil 接收者必須安全
	assert.NoError(t, m.Set(context.Background(), "p", "", "v"))
	assert.Equal(t, map[string]interface{}{"enabled": false}, m.GetStats())
	assert.NoError(t, m.Close())
}

func TestManagerSetGet(t *testing.T) {
	m := testManager(10)
	defer m.Close()

	ctx := context.Background()
	assert.NoError(t, m.Set(ctx, "prompt", "", "response"))

	val, err := m.Get(ctx, "prompt", "")
	assert.NoError(t, err)
	assert.Equal(t, "response", val)

	_, err = m.Get(ctx, "other prompt", "")
	assert.Error(t, err)
}

func TestManagerSetRespectsMaxSize(t *testing.T) {
	m := testManager(3)
	defer m.Close()

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		assert.NoError(t, m.Set(ctx, fmt.Sprintf("prompt-%d", i), "", "v"))
	}

	assert.LessOrEqual(t, m.GetStats()["size"].(int), 3)
}

func TestManagerConcurrentSetRespectsMaxSize(t *testing.T) {
	// 併發寫入不得超出容量上限
	m := testManager(3)
	defer m.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = m.Set(ctx, fmt.Sprintf("prompt-%d", i), "", "v")
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, m.GetStats()["size"].(int), 3)
}
