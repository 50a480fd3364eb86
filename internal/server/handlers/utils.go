package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/rendergate/internal/logfields"
)

// prettyRequested reports whether the caller asked for indented output.
func prettyRequested(r *http.Request) bool {
	switch r.URL.Query().Get("pretty") {
	case "1", "true":
		return true
	}
	return false
}

// respond marshals body before touching w, so an encode failure leaves the
// response unwritten for the caller's error adapter.
func respond(w http.ResponseWriter, r *http.Request, status int, body any) error {
	var (
		payload []byte
		err     error
	)
	if prettyRequested(r) {
		payload, err = json.MarshalIndent(body, "", "  ")
	} else {
		payload, err = json.Marshal(body)
	}
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(append(payload, '\n')); err != nil {
		slog.WarnContext(r.Context(), "Client went away before the response was written", logfields.Error(err))
		return err
	}
	return nil
}
