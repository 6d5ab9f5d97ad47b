package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/media"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/service"
	"github.com/aussiebroadwan/foodspot/internal/foodspot/store"
	"github.com/aussiebroadwan/foodspot/pkg/httpx"
	"github.com/aussiebroadwan/foodspot/pkg/jwtx"
	"github.com/aussiebroadwan/foodspot/pkg/slogx"

	_ "github.com/aussiebroadwan/foodspot/api/foodspot" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Options tune the routes registered by ApplyRoutes.
type Options struct {
	// AuthTimeout bounds every request under /api/auth/ and /api/register.
	AuthTimeout time.Duration

	RateLimitEnabled bool
	LoginLimit       httpx.RateLimitConfig
	RegisterLimit    httpx.RateLimitConfig

	UploadMaxBytes int64
	Swagger        bool
}

// DefaultOptions match the service's configuration defaults.
func DefaultOptions() Options {
	return Options{
		AuthTimeout:      10 * time.Second,
		RateLimitEnabled: true,
		LoginLimit:       httpx.PerMinute(10, 5),
		RegisterLimit:    httpx.PerMinute(5, 3),
		UploadMaxBytes:   media.DefaultMaxBytes,
		Swagger:          true,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	sessions     *Sessions

	Options Options

	Verifier     *service.CredentialVerifier
	Registration *service.RegistrationService
	Profiles     *service.ProfileService
	Foods        *service.FoodService
	Engagement   *service.EngagementService
	Revocations  *service.RevocationService

	Images media.ImageStore
	// Files serves uploaded images under /uploads/. Nil when images live in
	// object storage.
	Files http.Handler
}

func NewRouter(
	sessions *Sessions,
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		sessions:     sessions,
		logger:       logger,
		Options:      DefaultOptions(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger, "/livez", "/readyz"),
		httpx.Recover(),
		sessions.Materialize,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAccounts()
	r.registerFoods()
	r.registerEngagement()
	r.registerUploads()
	r.registerSystem()

	if r.Options.Swagger {
		r.Mux.Handle("/swagger/", httpSwagger.Handler())
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						FoodSpot API
//	@version					0.1.0
//	@description				Food discovery backend. Users browse businesses and their menus, like, comment on and review dishes.
//	@description				Businesses manage their menu.
//	@description
//	@description				Sessions are carried in the foodspot.session-token cookie set by /api/auth/login.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/foodspot
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						foodspot.session-token
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// limit returns the rate limit middleware, or a pass-through when rate
// limiting is off.
func (r *Router) limit(cfg httpx.RateLimitConfig, keyFn httpx.KeyExtractor) httpx.Middleware {
	if !r.Options.RateLimitEnabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httpx.RateLimit(cfg, keyFn)
}

// sensitive is the chain for routes that change account state: the
// revocation check runs before the role gate so a revoked session is a 401.
func (r *Router) sensitive(role domain.Role) []httpx.Middleware {
	return []httpx.Middleware{r.sessions.CheckRevocation, RequireRole(role)}
}

func (r *Router) registerAuth() {
	timeout := httpx.Timeout(r.Options.AuthTimeout)

	// Login is limited per client address and account, so one address
	// cannot spray passwords across accounts faster than the limit.
	loginHandler := &LoginHandler{Verifier: r.Verifier, Sessions: r.sessions}
	loginKey := httpx.CompositeKeyExtractor("|", httpx.IPKeyExtractor, httpx.JSONFieldKeyExtractor("email"))
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			timeout,
			r.limit(r.Options.LoginLimit, loginKey),
		),
	)

	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(&LogoutHandler{Sessions: r.sessions}, timeout),
	)
	r.Mux.Handle("GET /api/auth/session",
		httpx.Chain(SessionHandler{}, timeout),
	)

	revokeHandler := &RevokeHandler{Revocations: r.Revocations, Sessions: r.sessions}
	r.Mux.Handle("POST /api/auth/revoke",
		httpx.Chain(revokeHandler, timeout, RequireSession),
	)
}

func (r *Router) registerAccounts() {
	registerLimit := r.limit(r.Options.RegisterLimit, httpx.IPKeyExtractor)

	r.Mux.Handle("POST /api/register",
		httpx.Chain(&RegisterUserHandler{Registration: r.Registration},
			httpx.Timeout(r.Options.AuthTimeout),
			registerLimit,
		),
	)
	r.Mux.Handle("POST /api/businesses",
		httpx.Chain(&RegisterBusinessHandler{Registration: r.Registration},
			httpx.Timeout(r.Options.AuthTimeout),
			registerLimit,
		),
	)

	p := &ProfileHandler{Profiles: r.Profiles, Sessions: r.sessions}

	r.Mux.Handle("GET /api/users/me",
		httpx.Chain(http.HandlerFunc(p.HandleGetUser), RequireRole(domain.RoleUser)),
	)
	r.Mux.Handle("PUT /api/users/me",
		httpx.Chain(http.HandlerFunc(p.HandleUpdateUser), r.sensitive(domain.RoleUser)...),
	)

	r.Mux.HandleFunc("GET /api/businesses", p.HandleListBusinesses)
	r.Mux.HandleFunc("GET /api/businesses/{id}", p.HandleGetBusinessByID)
	r.Mux.Handle("GET /api/businesses/me",
		httpx.Chain(http.HandlerFunc(p.HandleGetBusiness), RequireRole(domain.RoleBusiness)),
	)
	r.Mux.Handle("PUT /api/businesses/me",
		httpx.Chain(http.HandlerFunc(p.HandleUpdateBusiness), r.sensitive(domain.RoleBusiness)...),
	)
}

func (r *Router) registerFoods() {
	h := &FoodsHandler{Foods: r.Foods}

	r.Mux.HandleFunc("GET /api/foods", h.HandleList)
	r.Mux.HandleFunc("GET /api/foods/{id}", h.HandleGet)
	r.Mux.Handle("GET /api/foods/business",
		httpx.Chain(http.HandlerFunc(h.HandleListOwn), RequireRole(domain.RoleBusiness)),
	)
	r.Mux.Handle("POST /api/foods",
		httpx.Chain(http.HandlerFunc(h.HandleCreate), r.sensitive(domain.RoleBusiness)...),
	)
	r.Mux.Handle("PUT /api/foods/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate), r.sensitive(domain.RoleBusiness)...),
	)
	r.Mux.Handle("DELETE /api/foods/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), r.sensitive(domain.RoleBusiness)...),
	)
}

func (r *Router) registerEngagement() {
	h := &EngagementHandler{Engagement: r.Engagement}
	userOnly := RequireRole(domain.RoleUser)

	r.Mux.Handle("POST /api/likes", httpx.Chain(http.HandlerFunc(h.HandleLike), userOnly))
	r.Mux.Handle("DELETE /api/likes", httpx.Chain(http.HandlerFunc(h.HandleUnlike), userOnly))
	r.Mux.Handle("POST /api/foods/{id}/comments", httpx.Chain(http.HandlerFunc(h.HandleComment), userOnly))
	r.Mux.Handle("DELETE /api/comments/{id}", httpx.Chain(http.HandlerFunc(h.HandleDeleteComment), userOnly))
	r.Mux.Handle("POST /api/foods/{id}/reviews", httpx.Chain(http.HandlerFunc(h.HandleReview), userOnly))
}

func (r *Router) registerUploads() {
	h := &UploadHandler{Images: r.Images, MaxBytes: r.Options.UploadMaxBytes}
	secured := []httpx.Middleware{r.sessions.CheckRevocation, RequireSession}

	r.Mux.Handle("POST /api/upload", httpx.Chain(http.HandlerFunc(h.HandleUpload), secured...))
	r.Mux.Handle("DELETE /api/upload", httpx.Chain(http.HandlerFunc(h.HandleDelete), secured...))

	if r.Files != nil {
		r.Mux.Handle("GET /uploads/", http.StripPrefix("/uploads", r.Files))
	}
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}
