package queue

import (
	"context"
	"sync"
)

// MemoryClient buffers messages in memory for local development and tests.
type MemoryClient struct {
	mu       sync.Mutex
	messages []Message
}

// NewMemoryClient constructs an in-memory queue client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// Send appends the message to the in-memory buffer.
func (m *MemoryClient) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

// Drain returns buffered messages and clears the buffer.
func (m *MemoryClient) Drain() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.messages
	m.messages = nil
	return out
}

var _ Client = (*MemoryClient)(nil)
