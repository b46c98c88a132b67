package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/services/auth"
)

func TestWriteErrorMapsModelErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound},
		{fmt.Errorf("lookup: %w", model.ErrWorldNotFound), http.StatusNotFound, CodeWorldNotFound},
		{model.ErrBanNotFound, http.StatusNotFound, CodeBanNotFound},
		{model.ErrInvalidLocation, http.StatusBadRequest, CodeInvalidLocation},
		{auth.ErrInvalidAPIKey, http.StatusUnauthorized, CodeUnauthorized},
		{NewInvalidRequestError("bad"), http.StatusBadRequest, CodeInvalidRequest},
		{NewHostUnavailableError(), http.StatusBadGateway, CodeHostUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError, CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}
