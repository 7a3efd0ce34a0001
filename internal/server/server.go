package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/waterline/internal/administrator"
	"github.com/smallbiznis/waterline/internal/alert"
	alertdomain "github.com/smallbiznis/waterline/internal/alert/domain"
	"github.com/smallbiznis/waterline/internal/audit"
	auditdomain "github.com/smallbiznis/waterline/internal/audit/domain"
	"github.com/smallbiznis/waterline/internal/auth"
	authdomain "github.com/smallbiznis/waterline/internal/auth/domain"
	"github.com/smallbiznis/waterline/internal/auth/session"
	"github.com/smallbiznis/waterline/internal/authorization"
	"github.com/smallbiznis/waterline/internal/client"
	clientdomain "github.com/smallbiznis/waterline/internal/client/domain"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/internal/config"
	"github.com/smallbiznis/waterline/internal/dashboard"
	dashboarddomain "github.com/smallbiznis/waterline/internal/dashboard/domain"
	"github.com/smallbiznis/waterline/internal/distribution"
	distributiondomain "github.com/smallbiznis/waterline/internal/distribution/domain"
	"github.com/smallbiznis/waterline/internal/facility"
	facilitydomain "github.com/smallbiznis/waterline/internal/facility/domain"
	"github.com/smallbiznis/waterline/internal/feedback"
	feedbackdomain "github.com/smallbiznis/waterline/internal/feedback/domain"
	"github.com/smallbiznis/waterline/internal/identity"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
	"github.com/smallbiznis/waterline/internal/invoice"
	invoicedomain "github.com/smallbiznis/waterline/internal/invoice/domain"
	"github.com/smallbiznis/waterline/internal/observability"
	obslogger "github.com/smallbiznis/waterline/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/waterline/internal/observability/metrics"
	obstracing "github.com/smallbiznis/waterline/internal/observability/tracing"
	"github.com/smallbiznis/waterline/internal/providers"
	"github.com/smallbiznis/waterline/internal/providers/spreadsheet"
	"github.com/smallbiznis/waterline/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	Services,
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

// Services wires the domain services the HTTP handlers depend on.
var Services = fx.Options(
	providers.Module,
	auth.Module,
	administrator.Module,
	client.Module,
	identity.Module,
	audit.Module,
	authorization.Module,
	facility.Module,
	distribution.Module,
	invoice.Module,
	alert.Module,
	feedback.Module,
	dashboard.Module,
	ratelimit.Module,
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) (*gin.Engine, error) {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	useJSONFieldNames()

	r := gin.New()
	// A nil list disables forwarded headers so ClientIP is the socket peer.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}

func registerRoutes(s *Server) {
	s.RegisterRoutes()
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	log             *zap.Logger
	clock           clock.Clock
	authsvc         authdomain.Service
	sessions        *session.Manager
	identitySvc     identitydomain.Service
	authzSvc        authorization.Service
	auditSvc        auditdomain.Service
	clientSvc       clientdomain.Service
	facilitySvc     facilitydomain.Service
	distributionSvc distributiondomain.Service
	invoiceSvc      invoicedomain.Service
	alertSvc        alertdomain.Service
	feedbackSvc     feedbackdomain.Service
	dashboardSvc    dashboarddomain.Service
	sheets          spreadsheet.Provider
	loginLimiter    *ratelimit.LoginLimiter
	obsMetrics      *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Log             *zap.Logger
	Clock           clock.Clock
	Authsvc         authdomain.Service
	Sessions        *session.Manager
	IdentitySvc     identitydomain.Service
	AuthzSvc        authorization.Service
	AuditSvc        auditdomain.Service
	ClientSvc       clientdomain.Service
	FacilitySvc     facilitydomain.Service
	DistributionSvc distributiondomain.Service
	InvoiceSvc      invoicedomain.Service
	AlertSvc        alertdomain.Service
	FeedbackSvc     feedbackdomain.Service
	DashboardSvc    dashboarddomain.Service
	Sheets          spreadsheet.Provider
	LoginLimiter    *ratelimit.LoginLimiter `optional:"true"`
	ObsMetrics      *obsmetrics.Metrics     `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:          p.Gin,
		log:             p.Log.Named("http.server"),
		clock:           p.Clock,
		authsvc:         p.Authsvc,
		sessions:        p.Sessions,
		identitySvc:     p.IdentitySvc,
		authzSvc:        p.AuthzSvc,
		auditSvc:        p.AuditSvc,
		clientSvc:       p.ClientSvc,
		facilitySvc:     p.FacilitySvc,
		distributionSvc: p.DistributionSvc,
		invoiceSvc:      p.InvoiceSvc,
		alertSvc:        p.AlertSvc,
		feedbackSvc:     p.FeedbackSvc,
		dashboardSvc:    p.DashboardSvc,
		sheets:          p.Sheets,
		loginLimiter:    p.LoginLimiter,
		obsMetrics:      p.ObsMetrics,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	s.registerPublicRoutes()
	s.registerAuthRoutes()
	s.registerAdminRoutes()
	s.registerClientRoutes()
}

func (s *Server) registerPublicRoutes() {
	s.engine.GET("/home-stats/", s.HomeStats)
	s.engine.GET("/positive-feedback/", s.PositiveFeedback)
}

func (s *Server) registerAuthRoutes() {
	s.engine.POST("/login/", s.LoginRateLimit(), s.Login)
	s.engine.POST("/register/", s.Register)
	s.engine.POST("/logout/", s.Logout)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.PrincipalRequired())

	admin.GET("/dashboard/", s.requireAdmin(authorization.ObjectAdminDashboard, authorization.ActionView, s.AdminDashboard))
	admin.GET("/water-levels/", s.requireAdmin(authorization.ObjectReservoir, authorization.ActionView, s.WaterLevels))
	admin.GET("/energy-production/", s.requireAdmin(authorization.ObjectEnergy, authorization.ActionView, s.EnergyProduction))
	admin.GET("/distribution-monthly/", s.requireAdmin(authorization.ObjectDistribution, authorization.ActionView, s.DistributionMonthly))
	admin.GET("/distribution-monthly/export/", s.requireAdmin(authorization.ObjectDistribution, authorization.ActionExport, s.ExportDistributionMonthly))
	admin.GET("/pump-status/", s.requireAdmin(authorization.ObjectPump, authorization.ActionView, s.PumpStatus))

	admin.POST("/water-sources/", s.requireAdmin(authorization.ObjectWaterSource, authorization.ActionCreate, s.CreateWaterSource))
	admin.POST("/reservoirs/", s.requireAdmin(authorization.ObjectReservoir, authorization.ActionCreate, s.CreateReservoir))
	admin.PATCH("/reservoirs/:id/", s.requireAdmin(authorization.ObjectReservoir, authorization.ActionUpdate, s.UpdateReservoir))
	admin.POST("/pumps/", s.requireAdmin(authorization.ObjectPump, authorization.ActionCreate, s.CreatePump))
	admin.PATCH("/pumps/:id/state/", s.requireAdmin(authorization.ObjectPump, authorization.ActionUpdate, s.SetPumpState))
	admin.POST("/energy/", s.requireAdmin(authorization.ObjectEnergy, authorization.ActionCreate, s.RecordEnergy))
	admin.GET("/filtrations/", s.requireAdmin(authorization.ObjectPump, authorization.ActionView, s.ListFiltrations))
	admin.POST("/filtrations/", s.requireAdmin(authorization.ObjectPump, authorization.ActionUpdate, s.RecordFiltration))

	admin.GET("/alerts/", s.requireAdmin(authorization.ObjectAlert, authorization.ActionView, s.ListAlerts))
	admin.POST("/alerts/", s.requireAdmin(authorization.ObjectAlert, authorization.ActionCreate, s.RaiseAlert))
	admin.POST("/alerts/:id/resolve/", s.requireAdmin(authorization.ObjectAlert, authorization.ActionResolve, s.ResolveAlert))
	admin.POST("/distributions/", s.requireAdmin(authorization.ObjectDistribution, authorization.ActionCreate, s.RecordDistribution))
	admin.GET("/audit-logs/", s.requireAdmin(authorization.ObjectAuditLog, authorization.ActionView, s.ListAuditLogs))
}

func (s *Server) registerClientRoutes() {
	client := s.engine.Group("/client", s.PrincipalRequired())

	client.GET("/dashboard/", s.requireClient(authorization.ObjectClientDashboard, authorization.ActionView, s.ClientDashboard))
	client.POST("/add-feedback/", s.requireClient(authorization.ObjectFeedback, authorization.ActionSubmit, s.AddFeedback))
	client.GET("/invoices/:id/pdf/", s.requireClient(authorization.ObjectInvoice, authorization.ActionView, s.DownloadInvoicePDF))
}
