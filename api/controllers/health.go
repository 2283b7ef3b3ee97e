package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/ncastellanos/tiendita-backend/api/responses"
	"github.com/ncastellanos/tiendita-backend/pkg/db"
	pkgerrors "github.com/ncastellanos/tiendita-backend/pkg/errors"
	"github.com/ncastellanos/tiendita-backend/pkg/logger"
)

// Health answers the basic liveness probe.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]bool{"ok": true})
	}
}

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every registered dependency and reports not-ready if
// any of them fails. All failures are collected, not just the first.
func HealthReady(logg *logger.Logger, pingers ...db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var combined error
		for _, p := range pingers {
			if p == nil {
				continue
			}
			combined = multierr.Append(combined, p.Ping(r.Context()))
		}

		if combined != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check failed"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
