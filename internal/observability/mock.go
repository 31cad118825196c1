package observability

import (
	"sync"
	"time"
)

var _ MetricsRegistry = (*MockMetricsRegistry)(nil)

// MockMetricsRegistry is a mock implementation of MetricsRegistry for testing.
// It records counter increments as "label/label" keys.
type MockMetricsRegistry struct {
	mu            sync.Mutex
	ToolCalls     map[string]int
	GraphRequests map[string]int
	PromptFills   map[string]int
}

// NewMockMetricsRegistry creates an empty MockMetricsRegistry.
func NewMockMetricsRegistry() *MockMetricsRegistry {
	return &MockMetricsRegistry{
		ToolCalls:     map[string]int{},
		GraphRequests: map[string]int{},
		PromptFills:   map[string]int{},
	}
}

// Tool call metrics
func (m *MockMetricsRegistry) IncrementToolCalls(tool, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ToolCalls[tool+"/"+outcome]++
}
func (m *MockMetricsRegistry) RecordToolLatency(tool string, duration time.Duration) {}

// Graph API metrics
func (m *MockMetricsRegistry) IncrementGraphRequests(method, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GraphRequests[method+"/"+status]++
}
func (m *MockMetricsRegistry) RecordGraphLatency(method string, duration time.Duration) {}

// Prompt metrics
func (m *MockMetricsRegistry) IncrementPromptFills(template, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PromptFills[template+"/"+outcome]++
}

// ToolCallCount returns how often tool finished with outcome.
func (m *MockMetricsRegistry) ToolCallCount(tool, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ToolCalls[tool+"/"+outcome]
}

// PromptFillCount returns how often template was filled with outcome.
func (m *MockMetricsRegistry) PromptFillCount(template, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PromptFills[template+"/"+outcome]
}
