//go:generate go run go.uber.org/mock/mockgen -source=handlers.go -destination=../mocks/mock_message_service.go -package=mocks
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/graphmsg/backend/internal/domain"
)

// MessageService is the behaviour the HTTP layer needs from the message service.
type MessageService interface {
	ListMessages(ctx context.Context) ([]domain.Message, error)
	CreateMessage(ctx context.Context, text string) (domain.Message, error)
	UpdateMessageText(ctx context.Context, id, text string) ([]domain.Message, error)
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger   *slog.Logger
	service  MessageService
	validate *validator.Validate
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc MessageService) *APIHandlers {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	return &APIHandlers{
		logger:   logger,
		service:  svc,
		validate: validate,
	}
}

type messageResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Text is a pointer so an empty string stays distinguishable from an absent field.
type messageTextRequest struct {
	Text *string `json:"text" validate:"required"`
}

func (h *APIHandlers) handleMessages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listMessages(w, r)
	case http.MethodPost:
		h.createMessage(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *APIHandlers) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		methodNotAllowed(w, http.MethodPatch)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/messages/")
	id = strings.Trim(id, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "message ID is required")
		return
	}

	h.updateMessageText(w, r, id)
}

func (h *APIHandlers) listMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context())
	if err != nil {
		h.logger.Error("failed to list messages", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toMessageResponses(messages))
}

func (h *APIHandlers) createMessage(w http.ResponseWriter, r *http.Request) {
	var payload messageTextRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	msg, err := h.service.CreateMessage(r.Context(), *payload.Text)
	if err != nil {
		h.logger.Error("failed to create message", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, toMessageResponse(msg))
}

func (h *APIHandlers) updateMessageText(w http.ResponseWriter, r *http.Request, id string) {
	var payload messageTextRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	messages, err := h.service.UpdateMessageText(r.Context(), id, *payload.Text)
	if err != nil {
		h.logger.Error("failed to update message text", "error", err, "messageId", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toMessageResponses(messages))
}

func toMessageResponse(msg domain.Message) messageResponse {
	return messageResponse{ID: msg.ID, Text: msg.Text}
}

func toMessageResponses(messages []domain.Message) []messageResponse {
	return lo.Map(messages, func(msg domain.Message, _ int) messageResponse {
		return toMessageResponse(msg)
	})
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty body decodes as an empty object; validation reports what is missing.
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
