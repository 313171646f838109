package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/divlens/backend/internal/api/handlers"
	"github.com/wonny/divlens/backend/pkg/logger"
)

const serviceName = "divlens-api"

// Handlers groups everything the router mounts
type Handlers struct {
	Dividends   *handlers.DividendHandler
	Evaluations *handlers.EvaluationHandler
	Results     *handlers.ResultHandler
	Health      handlers.HealthChecker
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", handlers.Root).Methods(http.MethodGet)
	r.HandleFunc("/items/{item_id}", handlers.ReadItem).Methods(http.MethodGet)
	r.HandleFunc("/health", handlers.Health(h.Health, serviceName)).Methods(http.MethodGet)

	// Dividends: bulk must be registered before the {ticker} route
	if h.Dividends != nil {
		r.HandleFunc("/dividends/bulk", h.Dividends.GetBulkDividendHistory).Methods(http.MethodPost)
		r.HandleFunc("/dividends/{ticker}", h.Dividends.GetDividendHistory).Methods(http.MethodGet)
	}

	if h.Evaluations != nil {
		for _, path := range []string{"/evaluations", "/evaluations/"} {
			r.HandleFunc(path, h.Evaluations.Create).Methods(http.MethodPost)
			r.HandleFunc(path, h.Evaluations.List).Methods(http.MethodGet)
		}
		r.HandleFunc("/evaluations/{id}", h.Evaluations.Get).Methods(http.MethodGet)
		r.HandleFunc("/evaluations/{id}", h.Evaluations.Update).Methods(http.MethodPut)
		r.HandleFunc("/evaluations/{id}", h.Evaluations.Delete).Methods(http.MethodDelete)
	}

	if h.Results != nil {
		for _, path := range []string{"/results", "/results/"} {
			r.HandleFunc(path, h.Results.Create).Methods(http.MethodPost)
			r.HandleFunc(path, h.Results.List).Methods(http.MethodGet)
		}
		r.HandleFunc("/results/{id}", h.Results.Get).Methods(http.MethodGet)
		r.HandleFunc("/results/{id}", h.Results.Update).Methods(http.MethodPut)
		r.HandleFunc("/results/{id}", h.Results.Delete).Methods(http.MethodDelete)
	}

	// Apply middleware (outermost first)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}
