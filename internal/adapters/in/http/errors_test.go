package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"traiteur/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordError(t *testing.T, err error) (*httptest.ResponseRecorder, Error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, writeError(ctx, err))

	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := map[string]struct {
		err  error
		code int
	}{
		"value required":   {errs.NewValueIsRequiredError("motif"), http.StatusBadRequest},
		"value invalid":    {errs.NewValueIsInvalidError("nb_personne"), http.StatusBadRequest},
		"not authorized":   {errs.NewAuthorizationError("not allowed"), http.StatusForbidden},
		"object not found": {errs.NewObjectNotFoundError("commande", "x"), http.StatusNotFound},
		"conflict":         {errs.NewConflictError("already terminal"), http.StatusConflict},
		"unknown":          {errors.New("boom"), http.StatusInternalServerError},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rec, body := recordError(t, tc.err)
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestWriteError_ConflictCarriesDetails(t *testing.T) {
	err := errs.NewConflictErrorWithDetails("insufficient stock", map[string]any{
		"stock_disponible": 3,
		"stock_demande":    4,
	})

	rec, body := recordError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "insufficient stock", body.Message)
	assert.EqualValues(t, 3, body.Details["stock_disponible"])
	assert.EqualValues(t, 4, body.Details["stock_demande"])
}

func TestWriteError_InternalErrorsAreOpaque(t *testing.T) {
	_, body := recordError(t, errors.New("pq: connection reset"))
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, body.Message, "pq:")
}
