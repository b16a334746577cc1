//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_repository.go -package=mocks
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/graphmsg/backend/internal/domain"
)

// MessageRepository is the storage contract required by the message service.
type MessageRepository interface {
	List(ctx context.Context) ([]domain.Message, error)
	Create(ctx context.Context, text string) (domain.Message, error)
	UpdateText(ctx context.Context, id, text string) ([]domain.Message, error)
}

// MessageService is the single entry point to the message repository. The
// repository sits on one graph session, so every operation, read or write,
// holds the same gate until it has fully returned. Waiting callers block
// without a timeout.
type MessageService struct {
	gate   sync.Mutex
	repo   MessageRepository
	logger *slog.Logger
}

// NewMessageService constructs a MessageService around repo.
func NewMessageService(repo MessageRepository, logger *slog.Logger) *MessageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageService{
		repo:   repo,
		logger: logger,
	}
}

// ListMessages returns every stored message. Order is whatever the backend reports.
func (s *MessageService) ListMessages(ctx context.Context) ([]domain.Message, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	messages, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Debug("list messages failed", "error", err)
		return nil, err
	}
	return messages, nil
}

// CreateMessage stores a new message with a server-generated id.
func (s *MessageService) CreateMessage(ctx context.Context, text string) (domain.Message, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	msg, err := s.repo.Create(ctx, text)
	if err != nil {
		s.logger.Debug("create message failed", "error", err)
		return domain.Message{}, err
	}
	return msg, nil
}

// UpdateMessageText replaces the text of the message with the given id and
// returns the updated records; an unknown id gives an empty slice.
func (s *MessageService) UpdateMessageText(ctx context.Context, id, text string) ([]domain.Message, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	messages, err := s.repo.UpdateText(ctx, id, text)
	if err != nil {
		s.logger.Debug("update message text failed", "error", err, "messageId", id)
		return nil, err
	}
	return messages, nil
}
