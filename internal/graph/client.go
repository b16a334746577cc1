package graph

import (
	"context"
	"errors"
	"fmt"
)

// Executor runs a single parameterized Cypher statement.
type Executor interface {
	Execute(ctx context.Context, cypher string, params map[string]any) (Rows, error)
}

// Client defines the contract the repository needs from the graph database.
type Client interface {
	Executor
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Rows is a lazy, single-pass cursor over the records of one query. Records
// arrive in backend order. Callers must call Close once done.
type Rows interface {
	Next(ctx context.Context) bool
	Record() Record
	Err() error
	Close(ctx context.Context) error
}

// Record groups key-value pairs returned from the graph engine.
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI      string
	Database string
	Username string
	Password string
}

var (
	// ErrMissingURI indicates the graph URI is not provided.
	ErrMissingURI = errors.New("graph URI is required")
	// ErrBackend marks any failure reported by the graph database itself.
	ErrBackend = errors.New("graph backend failure")
)

func backendError(err error) error {
	if err == nil || errors.Is(err, ErrBackend) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrBackend, err)
}
