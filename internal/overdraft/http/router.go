package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/metrics"
	"github.com/arvorebank/overdraft/internal/overdraft/service"
	"github.com/arvorebank/overdraft/internal/overdraft/store"
	"github.com/arvorebank/overdraft/pkg/httpx"
	"github.com/arvorebank/overdraft/pkg/jwtx"
	"github.com/arvorebank/overdraft/pkg/slogx"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	gatherer     prometheus.Gatherer

	store store.Store

	RegistryService   *service.RegistryService
	LedgerService     *service.LedgerService
	OperatorService   *service.OperatorService
	CredentialService *service.CredentialService
	Metrics           *metrics.Metrics

	// SecureCookies marks the session cookie Secure. Enabled outside dev.
	SecureCookies bool
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	gatherer prometheus.Gatherer,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		gatherer:     gatherer,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerOverdraft()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /auth/token", &TokenHandler{Credentials: r.CredentialService})
}

func (r *Router) registerOverdraft() {
	h := &OverdraftHandler{Registry: r.RegistryService, Metrics: r.Metrics}

	bearer := requireBearer(r.CredentialService)
	r.Mux.Handle("POST /overdraft/check",
		httpx.Chain(http.HandlerFunc(h.HandleCheck), bearer))
	r.Mux.Handle("POST /overdraft/client/create",
		httpx.Chain(http.HandlerFunc(h.HandleCreate), bearer))
}

func (r *Router) registerAdmin() {
	authHandler := &AdminAuthHandler{Operators: r.OperatorService, SecureCookies: r.SecureCookies}
	clientsHandler := &AdminClientsHandler{Registry: r.RegistryService, Operators: r.OperatorService}
	logsHandler := &AdminLogsHandler{Ledger: r.LedgerService}

	session := requireSession(r.OperatorService)

	r.Mux.Handle("POST /admin/login", http.HandlerFunc(authHandler.HandleLogin))
	r.Mux.Handle("POST /admin/logout",
		httpx.Chain(http.HandlerFunc(authHandler.HandleLogout), session))

	r.Mux.Handle("POST /admin/client/search",
		httpx.Chain(http.HandlerFunc(clientsHandler.HandleSearch), session))
	r.Mux.Handle("GET /admin/clients",
		httpx.Chain(http.HandlerFunc(clientsHandler.HandleList), session))
	r.Mux.Handle("POST /admin/client/update-limit",
		httpx.Chain(http.HandlerFunc(clientsHandler.HandleUpdateLimit), session))
	r.Mux.Handle("POST /admin/client/create",
		httpx.Chain(http.HandlerFunc(clientsHandler.HandleCreate), session))
	r.Mux.Handle("GET /admin/logs",
		httpx.Chain(logsHandler, session))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json", JWKSHandler(r.keys))
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
	r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
}
