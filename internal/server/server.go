package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	activitydomain "github.com/legatepro/legatepro/internal/activity/domain"
	authdomain "github.com/legatepro/legatepro/internal/auth/domain"
	billingdashboarddomain "github.com/legatepro/legatepro/internal/billingdashboard/domain"
	"github.com/legatepro/legatepro/internal/config"
	estatedomain "github.com/legatepro/legatepro/internal/estate/domain"
	expensedomain "github.com/legatepro/legatepro/internal/expense/domain"
	invoicedomain "github.com/legatepro/legatepro/internal/invoice/domain"
	obsmiddleware "github.com/legatepro/legatepro/internal/observability/logger"
	taskdomain "github.com/legatepro/legatepro/internal/task/domain"
	timeentrydomain "github.com/legatepro/legatepro/internal/timeentry/domain"
	workspacedomain "github.com/legatepro/legatepro/internal/workspace/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func registerGin(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
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
	engine       *gin.Engine
	cfg          config.Config
	authSvc      authdomain.Service
	estateSvc    estatedomain.Service
	invoiceSvc   invoicedomain.Service
	timeEntrySvc timeentrydomain.Service
	expenseSvc   expensedomain.Service
	taskSvc      taskdomain.Service
	activitySvc  activitydomain.Service
	workspaceSvc workspacedomain.Service
	dashboardSvc billingdashboarddomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	AuthSvc      authdomain.Service
	EstateSvc    estatedomain.Service
	InvoiceSvc   invoicedomain.Service
	TimeEntrySvc timeentrydomain.Service
	ExpenseSvc   expensedomain.Service
	TaskSvc      taskdomain.Service
	ActivitySvc  activitydomain.Service
	WorkspaceSvc workspacedomain.Service
	DashboardSvc billingdashboarddomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		authSvc:      p.AuthSvc,
		estateSvc:    p.EstateSvc,
		invoiceSvc:   p.InvoiceSvc,
		timeEntrySvc: p.TimeEntrySvc,
		expenseSvc:   p.ExpenseSvc,
		taskSvc:      p.TaskSvc,
		activitySvc:  p.ActivitySvc,
		workspaceSvc: p.WorkspaceSvc,
		dashboardSvc: p.DashboardSvc,
	}

	s.registerAuthRoutes()
	s.registerAPIRoutes()

	return s
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")
	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	api.GET("/estates", s.ListEstates)
	api.POST("/estates", s.CreateEstate)
	api.GET("/estates/:id", s.GetEstateByID)
	api.PATCH("/estates/:id", s.UpdateEstate)
	api.POST("/estates/:id/close", s.CloseEstate)
	api.POST("/estates/:id/collaborators", s.AddEstateCollaborator)
	api.DELETE("/estates/:id/collaborators", s.RemoveEstateCollaborator)

	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PATCH("/invoices/:id", s.UpdateInvoice)
	api.POST("/invoices/:id/status", s.UpdateInvoiceStatus)
	api.POST("/invoices/:id/void", s.VoidInvoice)

	api.GET("/time-entries", s.ListTimeEntries)
	api.POST("/time-entries", s.LogTimeEntry)
	api.PATCH("/time-entries/:id", s.UpdateTimeEntry)
	api.POST("/time-entries/:id/archive", s.ArchiveTimeEntry)
	api.POST("/time-entries/:id/attach", s.AttachTimeEntry)

	api.GET("/expenses", s.ListExpenses)
	api.POST("/expenses", s.CreateExpense)
	api.PATCH("/expenses/:id", s.UpdateExpense)
	api.DELETE("/expenses/:id", s.DeleteExpense)

	api.GET("/tasks", s.ListTasks)
	api.POST("/tasks", s.CreateTask)
	api.PATCH("/tasks/:id", s.UpdateTask)
	api.POST("/tasks/:id/complete", s.CompleteTask)
	api.DELETE("/tasks/:id", s.DeleteTask)

	api.GET("/activity", s.ListActivity)

	api.GET("/workspace", s.GetWorkspaceSettings)
	api.PATCH("/workspace", s.UpdateWorkspaceSettings)

	api.GET("/dashboard/billing", s.GetBillingDashboard)
}
