package api

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/threadcount/fulfillment/config"
	"github.com/threadcount/fulfillment/core/user"
)

func ConfigureRouter(
	cfg *config.Config,
	stockSvc StockService,
	cartSvc CartService,
	orderSvc OrderService,
	supplySvc SupplyService,
	catalogSvc CatalogService,
	userSvc user.Service,
) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost*", "https://localhost*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("UP"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/env", NewEnvApi(cfg).ConfigureRouter)

	r.Route("/api/v1", func(r chi.Router) {
		// Browsing and carting are anonymous, sessions carry the state.
		r.Route("/catalog", NewCatalogApi(catalogSvc, stockSvc, cfg.Store.LocationID).ConfigureRouter)
		r.Route("/cart", NewCartApi(cartSvc).ConfigureRouter)
		r.Route("/inventory", NewStockApi(stockSvc, userSvc).ConfigureRouter)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(userSvc))
			r.Route("/orders", NewOrderApi(orderSvc, cartSvc).ConfigureRouter)
			r.Route("/supply-orders", NewSupplyApi(supplySvc).ConfigureRouter)
			r.Route("/users", NewUserApi(userSvc).ConfigureRouter)
		})
	})

	return r
}

func Render(w http.ResponseWriter, r *http.Request, rnd render.Renderer) {
	if err := render.Render(w, r, rnd); err != nil {
		log.Warn().Err(err).Msg("failed to render")
	}
}

func RenderList(w http.ResponseWriter, r *http.Request, l []render.Renderer) {
	if err := render.RenderList(w, r, l); err != nil {
		log.Warn().Err(err).Msg("failed to render")
	}
}
