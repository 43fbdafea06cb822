package testutil

import (
	"context"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether any format string at the level contains substr.
func (m *MockLogger) Contains(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Logs {
		if l.Level == level && strings.Contains(l.Format, substr) {
			return true
		}
	}
	return false
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface and keeps counters.
type MockMetrics struct {
	mu             sync.Mutex
	CacheHits      int
	CacheMisses    int
	StoreErrors    map[string]int
	Fallbacks      map[string]int
	JobRuns        map[string]int
	JobFailures    map[string]int
	LastViewCounts [3]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (m *MockMetrics) ObserveStoreDuration(_, _ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncStoreErrors(backend, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErrors == nil {
		m.StoreErrors = make(map[string]int)
	}
	m.StoreErrors[backend+":"+op]++
}

func (m *MockMetrics) IncSourceFallbacks(backend string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fallbacks == nil {
		m.Fallbacks = make(map[string]int)
	}
	m.Fallbacks[backend]++
}

func (m *MockMetrics) SetViewCounts(total, acknowledged, pending int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastViewCounts = [3]int{total, acknowledged, pending}
}

func (m *MockMetrics) IncJobRuns(job string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.JobRuns == nil {
		m.JobRuns = make(map[string]int)
		m.JobFailures = make(map[string]int)
	}
	m.JobRuns[job]++
	if !ok {
		m.JobFailures[job]++
	}
}

// FallbackCount returns the fallback counter for a backend.
func (m *MockMetrics) FallbackCount(backend string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Fallbacks[backend]
}

// MockKeyValue implements interfaces.KeyValueInterface in memory.
type MockKeyValue struct {
	mu     sync.Mutex
	Data   map[string][]byte
	GetErr error
	SetErr error
	Sets   int
}

func NewMockKeyValue() *MockKeyValue {
	return &MockKeyValue{Data: make(map[string][]byte)}
}

func (m *MockKeyValue) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	val, ok := m.Data[key]
	return val, ok, nil
}

func (m *MockKeyValue) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Sets++
	m.Data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MockKeyValue) Close() {}

// MockSource implements datasource.Source with injectable results.
type MockSource struct {
	mu            sync.Mutex
	Rows          []models.AlertRow
	Err           error
	LoadFn        func(ctx context.Context) ([]models.AlertRow, error)
	RefreshFn     func(ctx context.Context, conditions []models.Condition) ([]models.AlertRow, error)
	LoadCalls     int
	RefreshCalls  int
	LastCondition []models.Condition
}

func (m *MockSource) LoadRows(ctx context.Context) ([]models.AlertRow, error) {
	m.mu.Lock()
	m.LoadCalls++
	fn := m.LoadFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return models.CloneRows(m.Rows), m.Err
}

func (m *MockSource) RefreshRows(ctx context.Context, conditions []models.Condition) ([]models.AlertRow, error) {
	m.mu.Lock()
	m.RefreshCalls++
	m.LastCondition = conditions
	fn := m.RefreshFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, conditions)
	}
	return models.CloneRows(m.Rows), m.Err
}

// RefreshCount returns RefreshCalls under the lock.
func (m *MockSource) RefreshCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RefreshCalls
}

// MockStore implements acknowledgment.Store in memory with injectable failures.
type MockStore struct {
	mu        sync.Mutex
	Records   []models.AcknowledgmentRecord
	LoadErr   error
	SaveErr   error
	RemoveErr error
	Saved     []models.AcknowledgmentRecord
	Removed   []string
}

func (m *MockStore) LoadAcknowledged(_ context.Context) (models.AcknowledgedSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return models.NewAcknowledgedSet(), m.LoadErr
	}
	set := models.NewAcknowledgedSet()
	for _, r := range m.Records {
		set.Add(r.ProductID)
	}
	return set, nil
}

func (m *MockStore) Save(_ context.Context, record models.AcknowledgmentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, record)
	m.Records = append(m.Records, record)
	return nil
}

func (m *MockStore) Remove(_ context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.Removed = append(m.Removed, productID)
	kept := m.Records[:0]
	for _, r := range m.Records {
		if r.ProductID != productID {
			kept = append(kept, r)
		}
	}
	m.Records = kept
	return nil
}
