package auditrepo_test

import (
	"context"
	"testing"
	"time"

	"printflow/internal/adapters/out/postgres/auditrepo"
	"printflow/internal/core/domain/model/access"
	"printflow/internal/core/domain/model/audit"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AuditLogRepositoryIntegrationTestSuite verifies the append-only
// operation record store against a real PostgreSQL instance.
type AuditLogRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *auditrepo.GormAuditLogRepository
}

func (suite *AuditLogRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&auditrepo.OperationLogDTO{}))
}

func (suite *AuditLogRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE operation_logs").Error)
	suite.repository = auditrepo.NewGormAuditLogRepository(suite.db)
}

func (suite *AuditLogRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AuditLogRepositoryIntegrationTestSuite) TestAppend_StoresRecordWithCheckTrail() {
	ctx := context.Background()
	record := suite.buildRecord("PO-2024-001", "调图", "start", "张伟", time.Now())
	record.Checks = []access.Check{
		{Rule: "content-shift", Name: "is_active", Passed: true},
		{Rule: "content-shift", Name: "print_type", Passed: true, Detail: "scope all"},
	}

	err := suite.repository.Append(ctx, record)
	suite.Require().NoError(err)

	records, total, err := suite.repository.List(ctx, ports.AuditLogFilter{Limit: 10})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(records, 1)

	stored := records[0]
	suite.True(stored.ID.IsEqual(record.ID))
	suite.Equal("PO-2024-001", stored.OrderNo)
	suite.Equal([]string{"机长", "质检员"}, stored.OperatorRoles)
	suite.Require().Len(stored.Checks, 2)
	suite.Equal("is_active", stored.Checks[0].Name)
	suite.Equal("scope all", stored.Checks[1].Detail)
}

func (suite *AuditLogRepositoryIntegrationTestSuite) TestList_FiltersAndPaginates() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := range 5 {
		record := suite.buildRecord("PO-2024-001", "调图", "start", "张伟", base.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(suite.repository.Append(ctx, record))
	}
	other := suite.buildRecord("PO-2024-002", "CTP", "complete", "李娜", base.Add(10*time.Minute))
	suite.Require().NoError(suite.repository.Append(ctx, other))

	records, total, err := suite.repository.List(ctx, ports.AuditLogFilter{
		OrderNo: "PO-2024-001",
		Offset:  1,
		Limit:   2,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(5), total)
	suite.Require().Len(records, 2)

	// Newest first: offset 1 skips the most recent record.
	suite.True(records[0].Timestamp.After(records[1].Timestamp))

	records, total, err = suite.repository.List(ctx, ports.AuditLogFilter{
		OperatorName: "李娜",
		Operation:    "complete",
		Limit:        10,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(records, 1)
	suite.Equal("PO-2024-002", records[0].OrderNo)
}

func (suite *AuditLogRepositoryIntegrationTestSuite) TestCountSince_CountsFromInstant() {
	ctx := context.Background()
	base := time.Now()

	old := suite.buildRecord("PO-2024-001", "调图", "start", "张伟", base.Add(-25*time.Hour))
	suite.Require().NoError(suite.repository.Append(ctx, old))
	recent := suite.buildRecord("PO-2024-001", "CTP", "start", "张伟", base.Add(-time.Hour))
	suite.Require().NoError(suite.repository.Append(ctx, recent))

	count, err := suite.repository.CountSince(ctx, base.Add(-2*time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

func (suite *AuditLogRepositoryIntegrationTestSuite) buildRecord(
	orderNo, stepName, operation, operatorName string, at time.Time,
) audit.OperationLog {
	record := audit.NewOperationLog(at)
	record.OrderNo = orderNo
	record.StepName = stepName
	record.PrintType = "content"
	record.Operation = operation
	record.OperatorID = kernel.NewUUID()
	record.OperatorName = operatorName
	record.OperatorRoles = []string{"机长", "质检员"}
	record.RuleUsed = "content-shift"
	record.Granted = true
	record.Success = true
	record.Origin = audit.RequestOrigin{IP: "10.0.0.5", UserAgent: "printflow-web/1.4"}
	return record
}

func TestAuditLogRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuditLogRepositoryIntegrationTestSuite))
}
