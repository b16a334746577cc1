package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/graphmsg/backend/internal/domain"
	"github.com/graphmsg/backend/internal/graph"
)

// ErrNoResult means a create statement was acknowledged but returned no node.
var ErrNoResult = errors.New("no result")

// Repository encapsulates Message persistence on top of a graph executor.
// It is not safe for concurrent use when the executor shares one session;
// service.MessageService provides the serialization.
type Repository struct {
	exec  graph.Executor
	newID func() string
}

// New instantiates a Repository backed by the supplied executor.
func New(exec graph.Executor) *Repository {
	return &Repository{
		exec:  exec,
		newID: uuid.NewString,
	}
}

// WithIDGenerator overrides the id source (used primarily in tests).
func (r *Repository) WithIDGenerator(fn func() string) {
	if fn != nil {
		r.newID = fn
	}
}

// List returns every Message node in backend order.
func (r *Repository) List(ctx context.Context) ([]domain.Message, error) {
	messages, err := r.query(ctx, listMessagesCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// Create persists a new Message with a fresh id and returns it as stored.
func (r *Repository) Create(ctx context.Context, text string) (domain.Message, error) {
	id := r.newID()
	messages, err := r.query(ctx, createMessageCypher, map[string]any{
		"id":   id,
		"text": text,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("create message: %w", err)
	}
	if len(messages) == 0 {
		return domain.Message{}, fmt.Errorf("create message %s: %w", id, ErrNoResult)
	}
	return messages[0], nil
}

// UpdateText sets the text of every Message whose id matches. An id that
// matches nothing yields an empty slice and no error.
func (r *Repository) UpdateText(ctx context.Context, id, text string) ([]domain.Message, error) {
	messages, err := r.query(ctx, updateMessageTextCypher, map[string]any{
		"id":   id,
		"text": text,
	})
	if err != nil {
		return nil, fmt.Errorf("update message %s: %w", id, err)
	}
	return messages, nil
}

func (r *Repository) query(ctx context.Context, cypher string, params map[string]any) (messages []domain.Message, err error) {
	rows, err := r.exec.Execute(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(ctx); closeErr != nil && err == nil {
			messages, err = nil, closeErr
		}
	}()

	messages = []domain.Message{}
	for rows.Next(ctx) {
		msg, err := messageFromRecord(rows.Record())
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
