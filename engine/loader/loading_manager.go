package loader

import (
	"sync"
)

// loadingManager is the implementation of the LoadingManager interface.
type loadingManager struct {
	mu *sync.Mutex

	started, ended int
	onStart        func(url string)
	onLoad         func()
	onError        func(url string, err error)
}

// LoadingManager tracks a batch of loads and reports when all of them have finished.
// Callbacks run synchronously on the goroutine that reports the item, outside the manager's lock.
type LoadingManager interface {
	// ItemStart records that a load for url began.
	//
	// Parameters:
	//   - url: the item identifier
	ItemStart(url string)

	// ItemEnd records that a load for url finished, successfully or not.
	// When every started item has ended, OnLoad fires once for the batch.
	//
	// Parameters:
	//   - url: the item identifier
	ItemEnd(url string)

	// ItemError reports a failed item to OnError. It does not end the item.
	//
	// Parameters:
	//   - url: the item identifier
	//   - err: the failure
	ItemError(url string, err error)

	// Pending returns the number of started items that have not ended.
	//
	// Returns:
	//   - int: in-flight item count
	Pending() int
}

var _ LoadingManager = &loadingManager{}

// NewLoadingManager creates a LoadingManager with the given callbacks.
//
// Parameters:
//   - options: a variadic list of LoadingManagerBuilderOption functions
//
// Returns:
//   - LoadingManager: the manager
func NewLoadingManager(options ...LoadingManagerBuilderOption) LoadingManager {
	m := &loadingManager{mu: &sync.Mutex{}}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *loadingManager) ItemStart(url string) {
	m.mu.Lock()
	m.started++
	cb := m.onStart
	m.mu.Unlock()

	if cb != nil {
		cb(url)
	}
}

func (m *loadingManager) ItemEnd(url string) {
	m.mu.Lock()
	if m.ended >= m.started {
		m.mu.Unlock()
		return
	}
	m.ended++
	done := m.ended == m.started
	if done {
		m.started, m.ended = 0, 0
	}
	cb := m.onLoad
	m.mu.Unlock()

	if done && cb != nil {
		cb()
	}
}

func (m *loadingManager) ItemError(url string, err error) {
	m.mu.Lock()
	cb := m.onError
	m.mu.Unlock()

	if cb != nil {
		cb(url, err)
	}
}

func (m *loadingManager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started - m.ended
}

// LoadingManagerBuilderOption is a functional option for configuring a LoadingManager.
type LoadingManagerBuilderOption func(*loadingManager)

// WithOnStart sets the callback fired when an item begins loading.
func WithOnStart(fn func(url string)) LoadingManagerBuilderOption {
	return func(m *loadingManager) {
		m.onStart = fn
	}
}

// WithOnLoad sets the callback fired once when every started item has ended.
func WithOnLoad(fn func()) LoadingManagerBuilderOption {
	return func(m *loadingManager) {
		m.onLoad = fn
	}
}

// WithOnError sets the callback fired for each failed item.
func WithOnError(fn func(url string, err error)) LoadingManagerBuilderOption {
	return func(m *loadingManager) {
		m.onError = fn
	}
}
