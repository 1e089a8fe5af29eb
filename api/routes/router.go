package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/craftloop/craftloop-backend/api/controllers"
	"github.com/craftloop/craftloop-backend/api/middleware"
	"github.com/craftloop/craftloop-backend/pkg/config"
	"github.com/craftloop/craftloop-backend/pkg/logger"
	"github.com/craftloop/craftloop-backend/pkg/metrics"
)

// Deps collects everything the router needs wired in.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	Authenticator *middleware.Authenticator
	RateLimiter   *middleware.RateLimiter
	Metrics       *metrics.HTTPMetrics
	MetricsReg    prometheus.Gatherer

	Health           *controllers.HealthController
	Auth             *controllers.AuthController
	Users            *controllers.UsersController
	Resources        *controllers.ResourcesController
	Projects         *controllers.ProjectsController
	ProjectResources *controllers.ProjectResourcesController
	Tasks            *controllers.TasksController
}

// New assembles the HTTP surface.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.RequestLogger(deps.Logger))

	r.Get("/health", deps.Health.Check)
	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Check)
	if deps.MetricsReg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsReg, promhttp.HandlerOpts{}))
	}

	rate := deps.Config.AuthRateLimit

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(deps.RateLimiter.Limit("register", rate.RegisterIPLimit, rate.RegisterWindow)).
				Post("/register", deps.Auth.Register)
			r.With(deps.RateLimiter.Limit("login", rate.LoginIPLimit, rate.LoginWindow)).
				Post("/login", deps.Auth.Login)
			r.Post("/refresh", deps.Auth.Refresh)
			r.Post("/logout", deps.Auth.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.Authenticator.RequireAuth)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", deps.Users.GetMe)
				r.Patch("/me", deps.Users.UpdateMe)
				r.Get("/me/tasks", deps.Tasks.ListMine)
				r.Get("/{userID}", deps.Users.GetByID)
			})

			// Materials and tools share one controller; {kind} picks the
			// table.
			r.Route("/{kind:materials|tools}", func(r chi.Router) {
				r.Post("/", deps.Resources.Create)
				r.Get("/", deps.Resources.ListMine)
				r.Get("/{resourceID}", deps.Resources.Get)
				r.Patch("/{resourceID}", deps.Resources.Update)
				r.Delete("/{resourceID}", deps.Resources.Delete)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", deps.Projects.Create)
				r.Get("/", deps.Projects.List)

				r.Route("/{projectID}", func(r chi.Router) {
					r.Get("/", deps.Projects.Get)
					r.Patch("/", deps.Projects.Update)
					r.Delete("/", deps.Projects.Delete)
					r.Get("/completion", deps.Projects.GetCompletion)
					r.Post("/completion/recompute", deps.Projects.RecomputeCompletion)

					r.Route("/tasks", func(r chi.Router) {
						r.Post("/", deps.Tasks.Create)
						r.Get("/", deps.Tasks.ListByProject)
					})

					r.Route("/{kind:materials|tools}", func(r chi.Router) {
						r.Post("/", deps.ProjectResources.Commit)
						r.Get("/", deps.ProjectResources.List)
						r.Patch("/{resourceID}", deps.ProjectResources.Adjust)
						r.Delete("/{resourceID}", deps.ProjectResources.Release)
					})
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/{taskID}", deps.Tasks.Get)
				r.Patch("/{taskID}", deps.Tasks.Update)
				r.Delete("/{taskID}", deps.Tasks.Delete)
			})
		})
	})

	return r
}
