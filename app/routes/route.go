package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-furniture/app/handlers"
	"github.com/Rakhulsr/go-furniture/app/middlewares"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func NewRouter(h *handlers.ConfigurationHandler, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middlewares.Recoverer(logger), middlewares.RequestLogger(logger))

	router.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)

	// API routes stay on the root router so a method mismatch answers 405.
	router.HandleFunc("/api/configurations", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/configurations/{slug}", h.Detail).Methods(http.MethodGet)
	router.HandleFunc("/api/quote", h.Quote).Methods(http.MethodPost)
	router.HandleFunc("/api/catalog", h.Catalog).Methods(http.MethodGet)

	return router
}
