package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/require"

	"github.com/graphmsg/backend/internal/domain"
	"github.com/graphmsg/backend/internal/graph"
)

func messageNode(id, text string) neo4j.Node {
	return neo4j.Node{
		Labels: []string{"Message"},
		Props:  map[string]any{"id": id, "text": text, "t": int64(1)},
	}
}

func TestRepository_List(t *testing.T) {
	req := require.New(t)
	mem := graph.NewMemoryClient()
	repo := New(mem)

	mem.PushResult(
		graph.Record{"n": messageNode("m-1", "hello")},
		graph.Record{"n": messageNode("m-2", "world")},
	)

	messages, err := repo.List(context.Background())
	req.NoError(err)
	req.ElementsMatch([]domain.Message{{ID: "m-1", Text: "hello"}, {ID: "m-2", Text: "world"}}, messages)

	calls := mem.Calls()
	req.Len(calls, 1)
	req.Equal(listMessagesCypher, calls[0].Query)
	req.Empty(calls[0].Params)
}

func TestRepository_ListEmpty(t *testing.T) {
	messages, err := New(graph.NewMemoryClient()).List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, messages)
	require.Empty(t, messages)
}

func TestRepository_Create(t *testing.T) {
	req := require.New(t)
	mem := graph.NewMemoryClient()
	repo := New(mem)
	repo.WithIDGenerator(func() string { return "fixed-id" })

	mem.PushResult(graph.Record{"n": messageNode("fixed-id", "hello")})

	msg, err := repo.Create(context.Background(), "hello")
	req.NoError(err)
	req.Equal(domain.Message{ID: "fixed-id", Text: "hello"}, msg)

	calls := mem.Calls()
	req.Len(calls, 1)
	req.Equal(createMessageCypher, calls[0].Query)
	req.Equal("fixed-id", calls[0].Params["id"])
	req.Equal("hello", calls[0].Params["text"])
}

func TestRepository_CreateDefaultIDsAreUUIDs(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)
	mem.PushResult(graph.Record{"n": messageNode("ignored", "x")})

	_, err := repo.Create(context.Background(), "x")
	require.NoError(t, err)

	id, ok := mem.Calls()[0].Params["id"].(string)
	require.True(t, ok)
	require.Len(t, id, 36)
}

func TestRepository_CreateNoResult(t *testing.T) {
	_, err := New(graph.NewMemoryClient()).Create(context.Background(), "hello")
	require.ErrorIs(t, err, ErrNoResult)
	require.NotErrorIs(t, err, graph.ErrBackend)
}

func TestRepository_UpdateText(t *testing.T) {
	req := require.New(t)
	mem := graph.NewMemoryClient()
	repo := New(mem)

	mem.PushResult(graph.Record{"n": messageNode("m-1", "goodbye")})

	messages, err := repo.UpdateText(context.Background(), "m-1", "goodbye")
	req.NoError(err)
	req.Equal([]domain.Message{{ID: "m-1", Text: "goodbye"}}, messages)

	call := mem.Calls()[0]
	req.Equal(updateMessageTextCypher, call.Query)
	req.Equal("m-1", call.Params["id"])
	req.Equal("goodbye", call.Params["text"])
}

func TestRepository_UpdateTextNoMatch(t *testing.T) {
	messages, err := New(graph.NewMemoryClient()).UpdateText(context.Background(), "nonexistent-id", "x")
	require.NoError(t, err)
	require.NotNil(t, messages)
	require.Empty(t, messages)
}

func TestRepository_BackendFailures(t *testing.T) {
	cause := errors.New("connection lost")
	repo := New(graph.NewMemoryClient().WithError(cause))
	ctx := context.Background()

	_, err := repo.List(ctx)
	require.ErrorIs(t, err, graph.ErrBackend)
	require.Contains(t, err.Error(), "connection lost")

	_, err = repo.Create(ctx, "x")
	require.ErrorIs(t, err, graph.ErrBackend)

	_, err = repo.UpdateText(ctx, "m-1", "x")
	require.ErrorIs(t, err, graph.ErrBackend)
}

func TestRepository_IterationFailureDiscardsPartialRows(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.PushFailingResult(errors.New("connection reset"), graph.Record{"n": messageNode("m-1", "hello")})

	messages, err := New(mem).List(context.Background())
	require.ErrorIs(t, err, graph.ErrBackend)
	require.Nil(t, messages)
}

func TestRepository_DecodeFailureIsSurfaced(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.PushResult(
		graph.Record{"n": messageNode("m-1", "hello")},
		graph.Record{"n": map[string]any{"id": "m-2"}},
	)

	messages, err := New(mem).List(context.Background())
	require.ErrorIs(t, err, ErrDecode)
	require.Nil(t, messages)
}

func TestRepository_ClosesRows(t *testing.T) {
	rows := graph.NewRows(graph.Record{"n": map[string]any{"text": "no id"}})
	repo := New(executorFunc(func(context.Context, string, map[string]any) (graph.Rows, error) {
		return rows, nil
	}))

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, ErrDecode)
	require.True(t, rows.Closed())
}

type executorFunc func(ctx context.Context, cypher string, params map[string]any) (graph.Rows, error)

func (f executorFunc) Execute(ctx context.Context, cypher string, params map[string]any) (graph.Rows, error) {
	return f(ctx, cypher, params)
}

// messageGraph is a tiny stand-in for Neo4j that understands the three
// message statements, so behaviour can be checked end to end.
type messageGraph struct {
	mu    sync.Mutex
	nodes []map[string]any
}

func (g *messageGraph) Execute(_ context.Context, cypher string, params map[string]any) (graph.Rows, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []graph.Record
	switch cypher {
	case listMessagesCypher:
		for _, node := range g.nodes {
			out = append(out, graph.Record{"n": copyProps(node)})
		}
	case createMessageCypher:
		node := map[string]any{"id": params["id"], "text": params["text"], "t": int64(len(g.nodes))}
		g.nodes = append(g.nodes, node)
		out = append(out, graph.Record{"n": copyProps(node)})
	case updateMessageTextCypher:
		for _, node := range g.nodes {
			if node["id"] == params["id"] {
				node["text"] = params["text"]
				out = append(out, graph.Record{"n": copyProps(node)})
			}
		}
	default:
		return nil, fmt.Errorf("unexpected statement %q", cypher)
	}
	return graph.NewRows(out...), nil
}

func copyProps(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func TestRepository_CreateThenListThenUpdate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := New(&messageGraph{})

	created, err := repo.Create(ctx, "hello")
	req.NoError(err)
	req.Equal("hello", created.Text)
	req.NotEmpty(created.ID)

	listed, err := repo.List(ctx)
	req.NoError(err)
	req.Contains(listed, created)

	updated, err := repo.UpdateText(ctx, created.ID, "goodbye")
	req.NoError(err)
	req.Equal([]domain.Message{{ID: created.ID, Text: "goodbye"}}, updated)

	listed, err = repo.List(ctx)
	req.NoError(err)
	req.Contains(listed, domain.Message{ID: created.ID, Text: "goodbye"})
	req.NotContains(listed, created)

	missing, err := repo.UpdateText(ctx, "nonexistent-id", "x")
	req.NoError(err)
	req.Empty(missing)
}

func TestRepository_CreateIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	repo := New(&messageGraph{})

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		msg, err := repo.Create(ctx, fmt.Sprintf("text-%d", i))
		require.NoError(t, err)
		require.NotEmpty(t, msg.ID)
		_, dup := seen[msg.ID]
		require.False(t, dup, "duplicate id %s", msg.ID)
		seen[msg.ID] = struct{}{}
	}
}
