package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/ownshop-backend/api/controllers"
	"github.com/angelmondragon/ownshop-backend/api/middleware"
	"github.com/angelmondragon/ownshop-backend/pkg/config"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

// Params collects everything the HTTP surface depends on. DB, Redis and
// RateLimiter are optional and must be left as nil interfaces when absent.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Stores      middleware.StoreResolver
	DB          controllers.Pinger
	Redis       controllers.Pinger
	RateLimiter middleware.RateLimiterStore
	Gatherer    prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	signInPolicy := middleware.NewAuthRateLimitPolicy(
		"signin",
		cfg.RateLimit.SignInWindow,
		cfg.RateLimit.SignInIPLimit,
		cfg.RateLimit.SignInEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    p.DB,
			"redis": p.Redis,
		}))
	})

	if p.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Device(cfg.JWT, p.Stores, logg))

		r.Get("/state", controllers.GetState(logg))
		r.Get("/categories", controllers.ListCategories())
		r.Get("/business-options", controllers.ListBusinessOptions())
		r.Get("/products", controllers.ListProducts(logg))
		r.Get("/products/{productId}", controllers.GetProduct(logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(signInPolicy, p.RateLimiter, logg)).Post("/signin", controllers.SignIn(logg))
			r.Post("/signout", controllers.SignOut(logg))
		})

		// Cart operations answer signed-out devices with a redirect outcome,
		// so they are not gated here.
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(logg))
			r.Post("/items", controllers.AddCartItem(logg))
			r.Patch("/items/{productId}", controllers.UpdateCartItem(logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(logg))
		})

		r.With(middleware.RequireSession(logg)).Post("/verifications", controllers.SubmitVerification(logg))

		r.Route("/seller", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleSeller, enums.RoleAdmin))
			r.Post("/products", controllers.AddProduct(logg))
			r.Delete("/products/{productId}", controllers.RemoveProduct(logg))
			r.Post("/products/{productId}/publication", controllers.ToggleProductPublication(logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
			r.Put("/banner", controllers.SetBanner(logg))
			r.Get("/verifications", controllers.ListVerifications(logg))
			r.Post("/verifications/{verificationId}/status", controllers.UpdateVerificationStatus(logg))
		})
	})

	return r
}
