package httpjson

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/clan-roster/app/shared/domainerrors"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domainerrors.Required("name"), http.StatusBadRequest},
		{fmt.Errorf("x: %w", domainerrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", domainerrors.ErrConflict), http.StatusConflict},
		{fmt.Errorf("x: %w", domainerrors.ErrStore), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestError_HidesServerDetail(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	Error(rr, req, logger, fmt.Errorf("%w: dial tcp 10.0.0.1:5432", domainerrors.ErrStore))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rr.Body.String())
}

func TestDecode(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, Decode(req, &v))
	assert.Equal(t, "x", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.ErrorIs(t, Decode(req, &v), domainerrors.ErrValidation)
}

func TestPathUUID(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("clanID", "not-a-uuid")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	_, err := PathUUID(req, "clanID")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
