package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/auth"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/config"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/http/handlers"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/http/middleware"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/version"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/ws"
)

const maxRequestBodyBytes = 64 << 20

type Dependencies struct {
	Pinger            handlers.Pinger
	AuthHandler       *handlers.AuthHandler
	ClientHandler     *handlers.ClientHandler
	CatalogHandler    *handlers.CatalogHandler
	RequestHandler    *handlers.RequestHandler
	EvaluationHandler *handlers.EvaluationHandler
	WSHandler         *ws.Handler
	JWTManager        *auth.JWTManager
}

func NewRouter(cfg config.Config, logger *slog.Logger, deps Dependencies) *gin.Engine {
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestBodyLimit(maxRequestBodyBytes))
	r.Use(func(c *gin.Context) {
		logger.Info("request", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Next()
	})

	health := handlers.NewHealthHandler(deps.Pinger)
	meta := handlers.NewMetaHandler(cfg.Env, version.Version)

	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/v1/meta", meta.GetMeta)

	if deps.ClientHandler != nil {
		r.POST("/v1/clients/register", deps.ClientHandler.Register)
		r.GET("/v1/clients/:rut/exists", deps.ClientHandler.CheckRut)
	}
	if deps.CatalogHandler != nil {
		r.GET("/v1/loan-types", deps.CatalogHandler.ListLoanTypes)
		r.GET("/v1/loan-types/:typeLoan", deps.CatalogHandler.GetLoanType)
		r.GET("/v1/simulation", deps.CatalogHandler.Simulate)
	}

	if deps.AuthHandler != nil && deps.JWTManager != nil {
		authGroup := r.Group("/v1/auth")
		authGroup.POST("/login", deps.AuthHandler.Login)
		authGroup.POST("/refresh", deps.AuthHandler.Refresh)
		authGroup.POST("/logout", deps.AuthHandler.Logout)

		protected := authGroup.Group("")
		protected.Use(middleware.RequireAuth(deps.JWTManager))
		protected.GET("/me", deps.AuthHandler.Me)

		if deps.RequestHandler != nil {
			clientGroup := r.Group("/v1")
			clientGroup.Use(middleware.RequireAuth(deps.JWTManager))
			clientGroup.POST("/requests/first-home", deps.RequestHandler.SubmitFirstHome)
			clientGroup.POST("/requests/second-home", deps.RequestHandler.SubmitSecondHome)
			clientGroup.POST("/requests/commercial-property", deps.RequestHandler.SubmitCommercialProperty)
			clientGroup.POST("/requests/remodeling", deps.RequestHandler.SubmitRemodeling)
			clientGroup.GET("/requests/mine", deps.RequestHandler.MyRequests)
			clientGroup.GET("/requests/:requestId", deps.RequestHandler.GetRequest)
			clientGroup.GET("/requests/:requestId/summary", deps.RequestHandler.GetSummary)
			clientGroup.DELETE("/requests/:requestId", deps.RequestHandler.DeleteRequest)
			clientGroup.GET("/requests/:requestId/documents/:docType", deps.RequestHandler.DownloadDocument)

			executiveGroup := r.Group("/v1")
			executiveGroup.Use(middleware.RequireAuth(deps.JWTManager), middleware.RequireRole(auth.RoleExecutive))
			executiveGroup.GET("/requests", deps.RequestHandler.ListWithStatus)
			executiveGroup.PUT("/requests/:requestId/status", deps.RequestHandler.EditStatus)
			if deps.ClientHandler != nil {
				executiveGroup.GET("/clients", deps.ClientHandler.ListClients)
			}
			if deps.EvaluationHandler != nil {
				executiveGroup.POST("/evaluations", deps.EvaluationHandler.Evaluate)
				executiveGroup.GET("/evaluations/age", deps.EvaluationHandler.AgeCheck)
				executiveGroup.GET("/requests/:requestId/total-costs", deps.EvaluationHandler.TotalCosts)
			}
		}
	}

	if deps.WSHandler != nil {
		r.GET("/ws", deps.WSHandler.HandleWebSocket)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	return r
}
