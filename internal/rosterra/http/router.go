package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/service"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store"
	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/aussiebroadwan/rosterra/pkg/jwtx"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"

	_ "github.com/aussiebroadwan/rosterra/api/rosterra" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// access says which guards a route sits behind.
type access int

const (
	public access = iota
	approved
	admin
)

type route struct {
	method  string
	path    string
	access  access
	handler http.HandlerFunc
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	prefix       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	AccountService *service.AccountService
	RosterService  *service.RosterService
}

// NewRouter builds a router mounting the REST surface under prefix
// (e.g. "/api").
func NewRouter(
	verifier jwtx.Verifier,
	prefix, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		prefix:       "/" + strings.Trim(prefix, "/"),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}
	if r.prefix == "/" {
		r.prefix = ""
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// Use appends global middleware. It runs inside the access log.
func (r *Router) Use(mws ...httpx.Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

// routes is the complete REST surface. Everything not public passes the
// authorization gate; admin routes also pass the role guard.
func (r *Router) routes() []route {
	auth := &AuthHandler{AuthService: r.AuthService, AccountService: r.AccountService}
	users := &UsersHandler{AccountService: r.AccountService}
	roasters := &RoastersHandler{RosterService: r.RosterService}
	livez := LivezHandler(r.startTime, r.buildVersion)

	return []route{
		{http.MethodGet, "/health", public, livez},

		{http.MethodPost, "/auth/signup", public, auth.HandleSignup},
		{http.MethodPost, "/auth/login", public, auth.HandleLogin},
		{http.MethodGet, "/auth/verify", approved, auth.HandleVerify},

		{http.MethodGet, "/users", admin, users.HandleList},
		{http.MethodGet, "/users/pending", admin, users.HandleListPending},
		{http.MethodGet, "/users/pending/count", admin, users.HandleCountPending},
		{http.MethodPut, "/users/{id}/approve", admin, users.HandleApprove},
		{http.MethodPut, "/users/{id}/reject", admin, users.HandleReject},
		{http.MethodDelete, "/users/{id}", admin, users.HandleDelete},

		{http.MethodGet, "/roasters", approved, roasters.HandleList},
		{http.MethodGet, "/roasters/{id}", approved, roasters.HandleGet},
		{http.MethodPost, "/roasters", approved, roasters.HandleCreate},
		{http.MethodPost, "/roasters/bulk", approved, roasters.HandleCreateBulk},
		{http.MethodPut, "/roasters/{id}", approved, roasters.HandleUpdate},
		{http.MethodDelete, "/roasters/{id}", approved, roasters.HandleDelete},
		{http.MethodDelete, "/roasters/clear/all", approved, roasters.HandleClear},
	}
}

func (r *Router) ApplyRoutes() {
	gate := httpx.RequireAccount(r.verifier, r.AuthService)
	adminOnly := httpx.RequireRole(httpx.RoleAdmin)

	for _, rt := range r.routes() {
		var h http.Handler = rt.handler
		switch rt.access {
		case approved:
			h = httpx.Chain(h, gate)
		case admin:
			h = httpx.Chain(h, gate, adminOnly)
		}
		r.Mux.Handle(rt.method+" "+r.prefix+rt.path, h)
	}

	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.verifier))
	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Rosterra API
//	@version		0.1.0
//	@description	Roster management with an admin approval workflow. New accounts start pending and
//	@description	cannot log in until an admin approves them.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5000
//	@BasePath					/api
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Login token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}
