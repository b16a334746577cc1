package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// NewNeo4jClient establishes a Bolt connection using the official Neo4j driver
// and opens the one session every query runs on. The pool is capped at a single
// connection; the session is not safe for concurrent use, so callers must
// serialize Execute and the consumption of the returned Rows.
func NewNeo4jClient(ctx context.Context, opts Options) (Client, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = 1
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: opts.Database,
		AccessMode:   neo4j.AccessModeWrite,
	})

	return &neo4jClient{
		driver:  driver,
		session: session,
	}, nil
}

type neo4jClient struct {
	driver  neo4j.DriverWithContext
	session neo4j.SessionWithContext
}

func (c *neo4jClient) Execute(ctx context.Context, cypher string, params map[string]any) (Rows, error) {
	res, err := c.session.Run(ctx, cypher, params)
	if err != nil {
		return nil, backendError(err)
	}
	return &neo4jRows{result: res}, nil
}

func (c *neo4jClient) VerifyConnectivity(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

func (c *neo4jClient) Close(ctx context.Context) error {
	sessionErr := c.session.Close(ctx)
	if err := c.driver.Close(ctx); err != nil {
		return err
	}
	return sessionErr
}

type neo4jRows struct {
	result  neo4j.ResultWithContext
	current Record
}

func (r *neo4jRows) Next(ctx context.Context) bool {
	if !r.result.Next(ctx) {
		r.current = nil
		return false
	}
	rec := r.result.Record()
	record := make(Record, len(rec.Keys))
	for i, key := range rec.Keys {
		record[key] = rec.Values[i]
	}
	r.current = record
	return true
}

func (r *neo4jRows) Record() Record {
	return r.current
}

func (r *neo4jRows) Err() error {
	return backendError(r.result.Err())
}

// Close discards any records not yet read so the session is free for the
// next statement.
func (r *neo4jRows) Close(ctx context.Context) error {
	if _, err := r.result.Consume(ctx); err != nil {
		return backendError(err)
	}
	return nil
}
