package container_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

func TestMapStore(t *testing.T) {
	s := container.NewMapStore[int]()

	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Set("b", 2)
	s.Set("a", 1)
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	s.Delete("a")
	assert.Equal(t, []string{"b"}, s.Keys())
}

func TestSyncStore_ConcurrentAccess(t *testing.T) {
	s := container.NewSyncStore[int](nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			s.Set(key, i)
			s.Get(key)
			s.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Keys(), 26)
}

func TestContainer_WithSubstitutedStores(t *testing.T) {
	reg := container.NewSyncStore[container.Record](nil)
	args := container.NewSyncStore[[]string](nil)
	cache := container.NewSyncStore[any](nil)

	c := container.New(
		container.WithRegistry(reg),
		container.WithArgumentTable(args),
		container.WithInstanceCache(cache),
	)
	require.NoError(t, c.Instance("config", &Config{}))
	require.NoError(t, c.RegisterSingleton("logger", container.Class(NewLogger)))
	require.NoError(t, c.RegisterSingleton("db", container.Class(NewDatabase, "config", "logger")))

	_, err := c.Get("db")
	require.NoError(t, err)

	assert.Equal(t, []string{"config", "db", "logger"}, reg.Keys())
	deps, ok := args.Get("db")
	require.True(t, ok)
	assert.Equal(t, []string{"config", "logger"}, deps)
	assert.ElementsMatch(t, []string{"config", "db", "logger"}, cache.Keys())
}

func TestArguments_ReturnsCopy(t *testing.T) {
	c := container.New()
	require.NoError(t, c.SetArguments("db", []string{"config", "logger"}))

	deps, ok := c.Arguments("db")
	require.True(t, ok)
	deps[0] = "mutated"

	again, _ := c.Arguments("db")
	assert.Equal(t, []string{"config", "logger"}, again)
}
