package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/engine"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/handler"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/lexicon"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/store"
	"github.com/capitalize-ai/trip-dialogue-engine/pkg/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	st := store.NewMemoryStore()
	now := func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }
	eng := engine.NewAt(st, lexicon.NewStatic(), nil, logger.NewNop(), now)

	conversations := handler.NewConversationHandler(eng, st, logger.NewNop())
	turns := handler.NewTurnHandler(eng, logger.NewNop())

	r := chi.NewRouter()
	r.Route("/api/v1/conversations", func(r chi.Router) {
		r.Post("/", conversations.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/state", conversations.GetState)
			r.Delete("/", conversations.Delete)
			r.Post("/turns", turns.Process)
		})
	})
	return r
}

func createConversation(t *testing.T, r http.Handler) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp model.CreateConversationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, model.ExpectDestination, resp.ExpectedSlot)
	return resp.ConversationID
}

func postTurn(t *testing.T, r http.Handler, id string, body model.TurnRequest) (*httptest.ResponseRecorder, model.TurnResponse) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/"+id+"/turns", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp model.TurnResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	}
	return rec, resp
}

func TestConversationLifecycle(t *testing.T) {
	r := newTestRouter(t)
	id := createConversation(t, r)

	rec, resp := postTurn(t, r, id, model.TurnRequest{Value: "I want to visit Paris"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Locked)
	assert.Equal(t, model.ExpectOrigin, resp.ExpectedSlot)
	require.NotNil(t, resp.State)
	assert.Equal(t, "Paris", resp.State.Destination.Normalized)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/"+id+"/state", nil)
	stateRec := httptest.NewRecorder()
	r.ServeHTTP(stateRec, req)
	require.Equal(t, http.StatusOK, stateRec.Code)

	var state model.TripState
	require.NoError(t, json.NewDecoder(stateRec.Body).Decode(&state))
	assert.Equal(t, model.ExpectOrigin, state.ExpectedSlot)

	del := httptest.NewRequest(http.MethodDelete, "/api/v1/conversations/"+id+"/", nil)
	delRec := httptest.NewRecorder()
	r.ServeHTTP(delRec, del)
	assert.Equal(t, http.StatusNoContent, delRec.Code)

	stateRec = httptest.NewRecorder()
	r.ServeHTTP(stateRec, httptest.NewRequest(http.MethodGet, "/api/v1/conversations/"+id+"/state", nil))
	assert.Equal(t, http.StatusNotFound, stateRec.Code)
}

func TestTurnRejectionSurfacesReason(t *testing.T) {
	r := newTestRouter(t)
	id := createConversation(t, r)

	postTurn(t, r, id, model.TurnRequest{Value: "Paris"})

	rec, resp := postTurn(t, r, id, model.TurnRequest{Slot: "destination", Value: "Rome"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Rejected)
	assert.Equal(t, "lock", resp.RejectReason)
}

func TestTurnValidation(t *testing.T) {
	r := newTestRouter(t)
	id := createConversation(t, r)

	rec, _ := postTurn(t, r, id, model.TurnRequest{Value: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = postTurn(t, r, id, model.TurnRequest{Slot: "hotel", Value: "five stars"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = postTurn(t, r, "not-a-uuid", model.TurnRequest{Value: "Paris"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetState_InvalidID(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/conversations/not-a-uuid/state", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
