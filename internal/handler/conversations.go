// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/engine"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/middleware"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/store"
	"github.com/capitalize-ai/trip-dialogue-engine/pkg/logger"
)

// ConversationHandler handles conversation lifecycle endpoints.
type ConversationHandler struct {
	engine *engine.Engine
	store  store.Store
	logger *logger.Logger
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(eng *engine.Engine, st store.Store, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		engine: eng,
		store:  st,
		logger: log,
	}
}

// Create handles POST /api/v1/conversations
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conversationID := uuid.Must(uuid.NewV7()).String()
	state, err := h.engine.StartConversation(ctx, conversationID)
	if err != nil {
		h.logger.Error("failed to start conversation", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to start conversation")
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateConversationResponse{
		ConversationID: state.ConversationID,
		ExpectedSlot:   state.ExpectedSlot,
		Prompt:         "Where would you like to go?",
		CreatedAt:      time.Now(),
	})
}

// GetState handles GET /api/v1/conversations/:id/state
func (h *ConversationHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.engine.State(ctx, conversationID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load state", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// Delete handles DELETE /api/v1/conversations/:id. An administrative
// operation; the engine itself never deletes state.
func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Delete(ctx, conversationID); err != nil {
		h.logger.Error("failed to delete conversation", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TurnHandler handles dialogue turn endpoints.
type TurnHandler struct {
	engine *engine.Engine
	logger *logger.Logger
}

// NewTurnHandler creates a new turn handler.
func NewTurnHandler(eng *engine.Engine, log *logger.Logger) *TurnHandler {
	return &TurnHandler{
		engine: eng,
		logger: log,
	}
}

// Process handles POST /api/v1/conversations/:id/turns
func (h *TurnHandler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateUtterance(req.Value); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateSlotName(req.Slot); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.engine.ProcessTurn(ctx, conversationID, req.Slot, req.Value, req.ExplicitChange)
	if errors.Is(err, engine.ErrMissingConversationID) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		// Store failure: fatal for this turn, nothing was written.
		h.logger.Error("failed to process turn",
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
		writeError(w, http.StatusServiceUnavailable, "failed to process turn")
		return
	}

	writeJSON(w, http.StatusOK, model.TurnResponse{
		ConfirmationText:   result.ConfirmationText,
		NeedsClarification: result.NeedsClarification,
		Locked:             result.Locked,
		Rejected:           result.Rejected,
		RejectReason:       string(result.RejectKind),
		ExpectedSlot:       result.ExpectedSlot,
		State:              result.State,
	})
}
