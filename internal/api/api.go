package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/susu3304/chipsettle/internal/cache"
	"github.com/susu3304/chipsettle/internal/config"
)

type API struct {
	router  *mux.Router
	cache   cache.Cache
	config  *config.Config
	limiter *RateLimiter
	server  *http.Server
}

func New(cfg *config.Config, c cache.Cache) *API {
	api := &API{
		router:  mux.NewRouter(),
		cache:   c,
		config:  cfg,
		limiter: NewRateLimiter(cfg.RateLimitPerMinute, time.Minute),
	}

	api.setupRoutes()
	api.server = &http.Server{
		Addr:              cfg.WebBind,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return api
}

func (a *API) setupRoutes() {
	a.router.HandleFunc("/healthz", a.handleHealth).Methods("GET")

	v := a.router.PathPrefix("/api").Subrouter()
	v.HandleFunc("/reasons", a.handleReasons).Methods("GET")
	v.HandleFunc("/settlements", a.handleSettlements).Methods("POST")
	v.HandleFunc("/gross", a.handleGross).Methods("POST")
	v.HandleFunc("/obligations", a.handleObligations).Methods("POST")
}

// Handler wraps the router with CORS, request IDs and rate limiting.
func (a *API) Handler() http.Handler {
	// When AllowedOrigins is "*", AllowCredentials must stay false
	corsOptions := cors.Options{
		AllowedOrigins:   a.config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
	}

	var h http.Handler = a.router
	h = RateLimitMiddleware(a.limiter, h)
	h = requestIDMiddleware(h)
	return cors.New(corsOptions).Handler(h)
}

// Start blocks until the server stops. It returns nil after Shutdown, even
// when Shutdown ran first.
func (a *API) Start() error {
	log.Printf("API server listening on http://%s", a.config.WebBind)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	a.limiter.Stop()
	return a.server.Shutdown(ctx)
}
