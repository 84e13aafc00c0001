package testutil

import (
	"context"
	"sync"

	"github.com/flexprice/invoicer/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

type txMarker struct{}

// MockPostgresClient runs units of work without a database. It counts the
// outermost transactions and how many of them failed.
type MockPostgresClient struct {
	mu         sync.Mutex
	committed  int
	rolledBack int
}

func NewMockPostgresClient() *MockPostgresClient {
	return &MockPostgresClient{}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	// nested calls join the outer unit of work
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}

	err := fn(context.WithValue(ctx, txMarker{}, true))

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.rolledBack++
	} else {
		c.committed++
	}
	return err
}

func (c *MockPostgresClient) Committed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed
}

func (c *MockPostgresClient) RolledBack() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rolledBack
}
