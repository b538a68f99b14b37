package db

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIncrement(t *testing.T) {
	t.Run("sequential", func(t *testing.T) {
		storage := NewInMemoryStorage()
		total, err := storage.Increment()
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		total, err = storage.Increment()
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
	t.Run("concurrent", func(t *testing.T) {
		storage := NewInMemoryStorage()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = storage.Increment()
			}()
		}
		wg.Wait()
		total, err := storage.Total()
		require.NoError(t, err)
		assert.Equal(t, int64(50), total)
	})
}

func TestInMemoryTotal(t *testing.T) {
	storage := NewInMemoryStorage()
	total, err := storage.Total()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
