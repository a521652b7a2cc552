package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingosavor/savor-api/internal/domain"
	"github.com/lingosavor/savor-api/internal/service"
)

func newGemHandler(users *fakeUserStore) *GemHandler {
	return NewGemHandler(service.NewGemService(users, nil), testLogger())
}

func TestAddGems(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore(&domain.User{ID: "u1", Email: "u@example.com", Gems: 50, AdViews: 1})
	h := newGemHandler(users)

	r := withUser(httptest.NewRequest(http.MethodPost, "/api/gems/add", strings.NewReader(`{"amount":30}`)), "u1")
	w := httptest.NewRecorder()

	h.Add(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp GemBalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 80, resp.Gems)
}

func TestAddGemsAdViewsExhausted(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore(&domain.User{ID: "u1", Email: "u@example.com", Gems: 0, AdViews: 0})
	h := newGemHandler(users)

	r := withUser(httptest.NewRequest(http.MethodPost, "/api/gems/add", strings.NewReader(`{"amount":10,"is_ad":true}`)), "u1")
	w := httptest.NewRecorder()

	h.Add(w, r)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, 0, users.users["u1"].Gems)
}

func TestAddGemsRejectsZeroAmount(t *testing.T) {
	t.Parallel()

	h := newGemHandler(newFakeUserStore(&domain.User{ID: "u1", Email: "u@example.com"}))

	r := withUser(httptest.NewRequest(http.MethodPost, "/api/gems/add", strings.NewReader(`{"amount":0}`)), "u1")
	w := httptest.NewRecorder()

	h.Add(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
