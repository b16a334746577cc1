package graph

import (
	"context"
	"sync"
)

// MemoryClient is a scripted implementation of the Client interface used for
// unit testing repository logic without requiring a running graph database.
type MemoryClient struct {
	mu           sync.Mutex
	calls        []ExecutedQuery
	results      []scriptedResult
	err          error
	connectivity error
}

// ExecutedQuery captures a cypher statement and parameters executed against the graph.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

type scriptedResult struct {
	records []Record
	iterErr error
}

// NewMemoryClient instantiates the in-memory client with no canned results.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// WithError configures the client to fail subsequent Execute calls with err.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// PushResult appends records that the next Execute call will stream.
func (m *MemoryClient) PushResult(records ...Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, scriptedResult{records: records})
}

// PushFailingResult appends records followed by an iteration failure, the way
// a connection dropped mid-stream looks to a caller.
func (m *MemoryClient) PushFailingResult(err error, records ...Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, scriptedResult{records: records, iterErr: err})
}

func (m *MemoryClient) Execute(_ context.Context, cypher string, params map[string]any) (Rows, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, backendError(m.err)
	}

	m.calls = append(m.calls, ExecutedQuery{
		Query:  cypher,
		Params: cloneMap(params),
	})

	if len(m.results) == 0 {
		return NewRows(), nil
	}

	res := m.results[0]
	m.results = m.results[1:]
	rows := NewRows(res.records...)
	rows.err = backendError(res.iterErr)
	return rows, nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// Calls returns a snapshot of executed queries.
func (m *MemoryClient) Calls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.calls...)
}

// SliceRows streams a fixed set of records, optionally ending in an error.
type SliceRows struct {
	records []Record
	pos     int
	err     error
	closed  bool
}

// NewRows returns Rows over the given records.
func NewRows(records ...Record) *SliceRows {
	return &SliceRows{records: records, pos: -1}
}

func (r *SliceRows) Next(context.Context) bool {
	if r.closed || r.pos+1 >= len(r.records) {
		r.pos = len(r.records)
		return false
	}
	r.pos++
	return true
}

func (r *SliceRows) Record() Record {
	if r.pos < 0 || r.pos >= len(r.records) {
		return nil
	}
	return r.records[r.pos]
}

func (r *SliceRows) Err() error {
	if r.pos < len(r.records) {
		return nil
	}
	return r.err
}

func (r *SliceRows) Close(context.Context) error {
	r.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (r *SliceRows) Closed() bool {
	return r.closed
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
