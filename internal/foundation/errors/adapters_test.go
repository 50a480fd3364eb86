package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, slog.Default())

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"validation", ValidationError("missing stage").Build(), 2},
		{"not found", NotFoundError("stage not found").Build(), 3},
		{"config", ConfigError("bad").Build(), 7},
		{"store", StoreError("down").Build(), 8},
		{"transport", TransportError("nats").Build(), 8},
		{"decode", DecodeError("bad json").Build(), 9},
		{"internal", InternalError("bug").Build(), 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, a.ExitCodeFor(tc.err))
		})
	}
}

func TestCLIFormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	require.Equal(t, "Error: stage not found", quiet.FormatError(NotFoundError("stage not found").Build()))
	require.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(InternalError("bug").Build()))

	verbose := NewCLIErrorAdapter(true, nil)
	require.Contains(t, verbose.FormatError(InternalError("bug").Build()), "[internal:fatal] bug")
}

func TestHTTPStatusMapping(t *testing.T) {
	a := NewHTTPErrorAdapter(nil)
	require.Equal(t, http.StatusOK, a.StatusCodeFor(nil))
	require.Equal(t, http.StatusBadRequest, a.StatusCodeFor(ValidationError("x").Build()))
	require.Equal(t, http.StatusNotFound, a.StatusCodeFor(NotFoundError("x").Build()))
	require.Equal(t, http.StatusUnprocessableEntity, a.StatusCodeFor(DecodeError("x").Build()))
	require.Equal(t, http.StatusBadGateway, a.StatusCodeFor(StoreError("x").Build()))
	require.Equal(t, http.StatusInternalServerError, a.StatusCodeFor(errors.New("x")))
}

func TestHTTPWriteErrorResponse(t *testing.T) {
	a := NewHTTPErrorAdapter(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/stages/thesis/decision", nil)

	a.WriteErrorResponse(rec, req, ValidationError("output_key is required").WithContext("param", "output_key").Build())

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "output_key is required", body.Error)
	require.Equal(t, "validation", body.Code)
	require.Equal(t, "output_key", body.Details["param"])
	require.False(t, body.Retryable)
}

func TestCLILogsOnlyFatalWhenQuiet(t *testing.T) {
	var logs bytes.Buffer
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))

	a.logError(NotFoundError("stage not found").Build())
	require.Empty(t, logs.String())

	a.logError(ConfigError("bad config").Build())
	require.Contains(t, logs.String(), "bad config")
	require.Contains(t, logs.String(), "category=config")
}
