package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Equal(t, domain.DefaultSettings(), store.Settings())
}

func TestConfigStore_Set_Success(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set(domain.KeyV3BaseURL, "https://ghe.local/api/v3/"))

	val, ok := store.Get(domain.KeyV3BaseURL)
	assert.True(t, ok)
	assert.Equal(t, "https://ghe.local/api/v3/", val)
}

func TestConfigStore_Set_Rejected(t *testing.T) {
	store := NewConfigStore()

	assert.ErrorIs(t, store.Set(domain.KeyVerbose, "loud"), domain.ErrInvalidInput)
	assert.False(t, store.Settings().Log.Verbose)
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Empty(t, store.Path())
	assert.Equal(t, domain.SettingKeys(), store.Keys())
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set(domain.KeyVerbose, "true")
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Get(domain.KeyVerbose)
		}()
	}
	wg.Wait()

	assert.True(t, store.Settings().Log.Verbose)
}
