package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/divlens/backend/pkg/database"
)

// Root handles GET /
func Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

// ReadItem echoes an item id and optional query
// GET /items/{item_id}?q=
func ReadItem(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["item_id"]
	itemID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item_id: "+strconv.Quote(raw))
		return
	}

	var q *string
	if v, ok := r.URL.Query()["q"]; ok && len(v) > 0 {
		q = &v[0]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"item_id": itemID,
		"q":       q,
	})
}

// HealthChecker reports database health
type HealthChecker interface {
	HealthCheck(ctx context.Context) (*database.HealthStatus, error)
}

// Health returns a GET /health handler. db may be nil when no database is wired.
func Health(db HealthChecker, service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"status":  "ok",
			"service": service,
		}
		if db == nil {
			respondJSON(w, http.StatusOK, body)
			return
		}

		status, err := db.HealthCheck(r.Context())
		body["database"] = status
		if err != nil {
			body["status"] = "degraded"
			respondJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		respondJSON(w, http.StatusOK, body)
	}
}
