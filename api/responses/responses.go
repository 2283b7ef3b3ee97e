// Package responses writes the API's flat JSON bodies. Success payloads
// are emitted as-is; errors collapse to {"error": CODE} plus whatever
// extra fields the code permits.
package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/ncastellanos/tiendita-backend/pkg/errors"
	"github.com/ncastellanos/tiendita-backend/pkg/logger"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// WriteError renders err in the flat wire format. Untyped errors surface
// as INTERNAL_ERROR with a message; the full chain still reaches the log.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	code := typed.Code()
	meta := pkgerrors.MetadataFor(code)
	status := meta.HTTPStatus

	payload := map[string]any{"error": string(code)}

	if meta.DetailsAllowed {
		if details, ok := typed.Details().(map[string]any); ok {
			for k, v := range details {
				if k == "error" {
					continue
				}
				payload[k] = v
			}
		}
	}

	if code == pkgerrors.CodeInternal {
		msg := typed.Message()
		if msg == "" {
			msg = meta.PublicMessage
		}
		payload["message"] = msg
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)

		fields := map[string]any{
			"error":         dump.TopMessage,
			"error_code":    dump.Code,
			"error_chain":   dump.Chain,
			"pg_code":       dump.PGCode,
			"pg_detail":     dump.PGDetail,
			"pg_message":    dump.PGMessage,
			"pg_table":      dump.PGTable,
			"pg_column":     dump.PGColumn,
			"pg_constraint": dump.PGConstraint,
		}

		ctx = logg.WithFields(ctx, fields)
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
