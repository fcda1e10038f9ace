package billing

import (
	"context"
	"fmt"
	"time"

	"encore.dev/rlog"
)

// signalTimeout bounds a workflow signal sent after the API call has returned.
const signalTimeout = 5 * time.Second

// signalJob is one workflow signal delivered in the background.
type signalJob struct {
	workflowID string
	name       string
	arg        interface{}
}

type signalSender func(ctx context.Context, job signalJob) error

// runAsync schedules delivery. Tests swap it to deliver inline.
var runAsync = func(job signalJob, send signalSender) {
	go func() { _ = deliverSignal(job, send) }()
}

// deliverSignal sends job under its own timeout. Failures and panics are logged and
// returned, never propagated to the request that queued the signal.
func deliverSignal(job signalJob, send signalSender) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), signalTimeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("signal %s panicked: %v", job.name, p)
		}
		if err != nil {
			rlog.Error("Failed to deliver workflow signal", "workflow_id", job.workflowID, "signal", job.name, "error", err)
		}
	}()

	if err := send(ctx, job); err != nil {
		return err
	}
	rlog.Debug("Workflow signal delivered", "workflow_id", job.workflowID, "signal", job.name)
	return nil
}

// signalInBackground queues a signal to the encounter's billing workflow.
func (s *Service) signalInBackground(workflowID, name string, arg interface{}) {
	runAsync(signalJob{workflowID: workflowID, name: name, arg: arg}, func(ctx context.Context, job signalJob) error {
		return s.temporal.SignalWorkflow(ctx, job.workflowID, "", job.name, job.arg)
	})
}
