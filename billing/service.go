package billing

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"encore.dev/rlog"
	"encore.dev/storage/sqldb"

	"github.com/carelane/hospital-billing/billing/business/revenue"
	"github.com/carelane/hospital-billing/billing/domain"
	"github.com/carelane/hospital-billing/billing/idempotency"
	"github.com/carelane/hospital-billing/billing/idempotency/pgstore"
	idempotencymw "github.com/carelane/hospital-billing/billing/middleware/idempotency"
	"github.com/carelane/hospital-billing/billing/store"
	"github.com/carelane/hospital-billing/billing/store/claims"
	"github.com/carelane/hospital-billing/billing/workflow"
)

const taskQueue = "patient-billing"

var billingDB = sqldb.NewDatabase("hospital_billing", sqldb.DatabaseConfig{
	Migrations: "./db/migrations",
})

var validate = validator.New()

//encore:service
type Service struct {
	business    revenue.Business
	coordinator *idempotency.Coordinator
	temporal    client.Client
	worker      worker.Worker
}

func initService() (*Service, error) {
	pgxdb := sqldb.Driver(billingDB)

	rlog.Info("Initializing Store")
	repo := store.NewStore(pgxdb)

	coordinator, err := idempotency.NewCoordinator(pgstore.NewFromRepository(pgxdb, repo), nil, idempotency.DefaultConfig(),
		idempotency.WithLogger(rlogLogger{}))
	if err != nil {
		return nil, fmt.Errorf("create idempotency coordinator: %w", err)
	}
	idempotencymw.Use(coordinator)

	rlog.Info("Initializing State Machine")
	stateMachine := domain.NewClaimStateMachine(pgxdb, claims.New(pgxdb))

	business := revenue.NewRevenueBusiness(repo.Claims, repo.Payments, stateMachine)
	workflow.SetActivityDependencies(business, coordinator)

	hostPort := os.Getenv("TEMPORAL_HOST_PORT")
	if hostPort == "" {
		hostPort = client.DefaultHostPort
	}
	rlog.Info("Connecting to Temporal", "host_port", hostPort, "task_queue", taskQueue)
	c, err := client.Dial(client.Options{
		HostPort: hostPort,
		Logger:   rlogLogger{},
	})
	if err != nil {
		return nil, fmt.Errorf("create temporal client: %w", err)
	}

	w := worker.New(c, taskQueue, worker.Options{})
	w.RegisterWorkflow(workflow.PatientBilling)
	w.RegisterActivity(workflow.VerifyCoverageActivity)
	w.RegisterActivity(workflow.GenerateClaimActivity)
	w.RegisterActivity(workflow.ChargePatientActivity)
	if err := w.Start(); err != nil {
		c.Close()
		return nil, fmt.Errorf("start temporal worker: %w", err)
	}

	return &Service{
		business:    business,
		coordinator: coordinator,
		temporal:    c,
		worker:      w,
	}, nil
}

// Shutdown stops the worker and closes the Temporal client.
func (s *Service) Shutdown(force context.Context) {
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.temporal != nil {
		s.temporal.Close()
	}
}
