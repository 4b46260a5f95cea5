package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quatet/storefront-api/api/controllers"
	"github.com/quatet/storefront-api/api/middleware"
	accountsvc "github.com/quatet/storefront-api/internal/account"
	"github.com/quatet/storefront-api/internal/authn"
	blogsvc "github.com/quatet/storefront-api/internal/blog"
	cartsvc "github.com/quatet/storefront-api/internal/cart"
	catalogsvc "github.com/quatet/storefront-api/internal/catalog"
	"github.com/quatet/storefront-api/internal/gateway"
	quotationsvc "github.com/quatet/storefront-api/internal/quotation"
	"github.com/quatet/storefront-api/pkg/auth/session"
	"github.com/quatet/storefront-api/pkg/config"
	"github.com/quatet/storefront-api/pkg/enums"
	"github.com/quatet/storefront-api/pkg/logger"
	"github.com/quatet/storefront-api/pkg/redis"
)

type Services struct {
	Auth    *authn.Service
	Carts   *cartsvc.Manager
	Quotes  *quotationsvc.Service
	Catalog *catalogsvc.Service
	Blog    *blogsvc.Service
	Account *accountsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	sessions session.Checker,
	svcs Services,
	metricsRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	authed := middleware.Auth(cfg.JWT, sessions, logg)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	if metricsRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(authed).Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
		r.With(authed).Get("/me", controllers.AuthMe(cfg.JWT, logg))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(svcs.Catalog, logg))
		r.Get("/{productId}", controllers.ProductDetail(svcs.Catalog, logg))
	})
	r.Get("/api/categories", controllers.CategoryList(svcs.Catalog, logg))

	r.Route("/api/blogs", func(r chi.Router) {
		r.Get("/", controllers.BlogList(svcs.Blog, logg))
		r.Get("/{postId}", controllers.BlogDetail(svcs.Blog, logg))
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", controllers.CartFetch(svcs.Carts, logg))
		r.Get("/count", controllers.CartCount(svcs.Carts, logg))
		r.Delete("/", controllers.CartClear(svcs.Carts, logg))
		r.Post("/items", controllers.CartAddItem(svcs.Carts, logg))
		r.Put("/items", controllers.CartUpdateItem(svcs.Carts, logg))
		r.Delete("/items/{productId}", controllers.CartRemoveItem(svcs.Carts, logg))
	})

	r.Route("/api/quotations", func(r chi.Router) {
		r.Use(authed)
		r.Use(middleware.RequireRole(logg, enums.UserRoleCustomer))
		r.Get("/", controllers.QuotationList(svcs.Quotes, gateway.QuotationScopeCustomer, logg))
		r.Post("/", controllers.QuotationCreate(svcs.Quotes, logg))
		r.Get("/{quotationId}", controllers.QuotationDetail(svcs.Quotes, logg))
		r.Post("/{quotationId}/actions", controllers.QuotationAct(svcs.Quotes, logg))
	})

	r.Route("/api/staff/quotations", func(r chi.Router) {
		r.Use(authed)
		r.Use(middleware.RequireRole(logg, enums.UserRoleStaff, enums.UserRoleAdmin))
		r.Get("/", controllers.QuotationList(svcs.Quotes, gateway.QuotationScopeStaff, logg))
		r.Get("/{quotationId}", controllers.QuotationDetail(svcs.Quotes, logg))
		r.Post("/{quotationId}/items/{lineId}/fees", controllers.QuotationFeeAdd(svcs.Quotes, logg))
		r.Put("/{quotationId}/items/{lineId}/fees/{feeId}", controllers.QuotationFeeUpdate(svcs.Quotes, logg))
		r.Delete("/{quotationId}/items/{lineId}/fees/{feeId}", controllers.QuotationFeeDelete(svcs.Quotes, logg))
	})

	r.Route("/api/admin/quotations", func(r chi.Router) {
		r.Use(authed)
		r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))
		r.Get("/", controllers.QuotationList(svcs.Quotes, gateway.QuotationScopeAdmin, logg))
		r.Get("/{quotationId}", controllers.QuotationDetail(svcs.Quotes, logg))
		r.Post("/{quotationId}/actions", controllers.QuotationAct(svcs.Quotes, logg))
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", controllers.ProfileFetch(svcs.Account, logg))
		r.Put("/", controllers.ProfileUpdate(svcs.Account, logg))
	})

	return r
}
