package cmd

import (
	"log/slog"

	apihttp "printflow/internal/adapters/in/http"
	"printflow/internal/adapters/out/notify"
	"printflow/internal/adapters/out/postgres"
	"printflow/internal/adapters/out/postgres/auditrepo"
	"printflow/internal/adapters/out/postgres/rolerepo"
	"printflow/internal/adapters/out/templates"
	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/ports"
	"printflow/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. Shared singletons (the
// event publisher and its dashboard sink) are created once; handlers are
// cheap and created per call site.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	roleRepo   *rolerepo.GormRoleRepository
	auditRepo  *auditrepo.GormAuditLogRepository
	publisher  *notify.FanoutPublisher
	dashboard  *notify.DashboardSink
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		roleRepo:   rolerepo.NewGormRoleRepository(gormDB),
		auditRepo:  auditrepo.NewGormAuditLogRepository(gormDB),
		logger:     logger,
	}

	statsHandler := root.CreateGetDashboardStatsQueryHandler()
	root.dashboard = notify.NewDashboardSink(statsHandler, logger)
	root.publisher = notify.NewFanoutPublisher(logger, root.dashboard)
	return root
}

// Close drains and stops the event publisher.
func (c *CompositionRoot) Close() {
	c.publisher.Close()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), templates.NewStaticProvider(), c.publisher)
}

func (c *CompositionRoot) CreateStartStepCommandHandler() commands.StartStepCommandHandler {
	return commands.NewStartStepCommandHandler(c.orderUoWFactory(), c.roleRepo, c.auditRepo, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCompleteStepCommandHandler() commands.CompleteStepCommandHandler {
	return commands.NewCompleteStepCommandHandler(c.orderUoWFactory(), c.roleRepo, c.auditRepo, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSkipStepCommandHandler() commands.SkipStepCommandHandler {
	return commands.NewSkipStepCommandHandler(c.orderUoWFactory(), c.roleRepo, c.auditRepo, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetOrderProgressQueryHandler() queries.GetOrderProgressQueryHandler {
	return queries.NewGetOrderProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditLogsQueryHandler() queries.GetAuditLogsQueryHandler {
	return queries.NewGetAuditLogsQueryHandler(c.auditRepo)
}

func (c *CompositionRoot) CreateGetDashboardStatsQueryHandler() queries.GetDashboardStatsQueryHandler {
	return queries.NewGetDashboardStatsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the JSON API server over all use cases.
func (c *CompositionRoot) CreateHTTPServer() *apihttp.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	startStep := c.CreateStartStepCommandHandler()
	completeStep := c.CreateCompleteStepCommandHandler()
	skipStep := c.CreateSkipStepCommandHandler()
	cancelOrder := c.CreateCancelOrderCommandHandler()

	return apihttp.NewServer(
		&createOrder,
		&startStep,
		&completeStep,
		&skipStep,
		&cancelOrder,
		c.CreateGetOrderProgressQueryHandler(),
		c.CreateGetAuditLogsQueryHandler(),
		c.CreateGetDashboardStatsQueryHandler(),
	)
}

// CreateJobManager assembles the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	statsHandler := c.CreateGetDashboardStatsQueryHandler()
	var auditLog ports.AuditLogRepository = c.auditRepo
	return jobs.NewJobManager(statsHandler, auditLog, c.config.ReportCronSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
