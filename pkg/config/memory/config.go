package memory

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/4alls/Mostro-MVP-Program/pkg/config"
)

var errDeveloperInduced = errors.New("in memory config: developer induced error")

// Store holds named config values in memory. It is the in process
// counterpart of the environment source: values are looked up by the same
// keys, and unset keys yield config.ErrNoValue.
type Store struct {
	stateMu  sync.RWMutex
	values   map[string]interface{}
	err      error
	shutdown bool
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]interface{}),
	}
}

// Config returns a config.Config reading key from the store.
func (s *Store) Config(key string) config.Config {
	return &keyedConfig{store: s, key: key}
}

// Set sets the value returned for key on subsequent Get calls. A nil value
// clears the key.
func (s *Store) Set(key string, value interface{}) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if value == nil {
		delete(s.values, key)
		return
	}
	s.values[key] = value
}

// Clear sets up the key as if no value has been set
func (s *Store) Clear(key string) {
	s.Set(key, nil)
}

// InduceErrors instructs the store to simulate an error getting any value
func (s *Store) InduceErrors() {
	s.stateMu.Lock()
	s.err = errDeveloperInduced
	s.stateMu.Unlock()
}

// StopInducingErrors stops the store from simulating errors
func (s *Store) StopInducingErrors() {
	s.stateMu.Lock()
	s.err = nil
	s.stateMu.Unlock()
}

// Shutdown causes every config backed by the store to return
// config.ErrShutdown.
func (s *Store) Shutdown() {
	s.stateMu.Lock()
	s.shutdown = true
	s.stateMu.Unlock()
}

func (s *Store) get(key string) (interface{}, error) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	if s.shutdown {
		return nil, config.ErrShutdown
	}
	if s.err != nil {
		return nil, s.err
	}

	value, ok := s.values[key]
	if !ok {
		return nil, config.ErrNoValue
	}
	return value, nil
}

type keyedConfig struct {
	store *Store
	key   string
}

// Get implements Config.Get
func (c *keyedConfig) Get(_ context.Context) (interface{}, error) {
	return c.store.get(c.key)
}

// Shutdown implements Config.Shutdown
func (c *keyedConfig) Shutdown() {
	c.store.Shutdown()
}

// NewConfig returns a config holding a single value. Use an initial nil
// value to indicate no value is set.
func NewConfig(value interface{}) config.Config {
	s := NewStore()
	s.Set("", value)
	return s.Config("")
}
