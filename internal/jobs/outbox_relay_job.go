package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/history"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxSchedule runs the relay every five seconds.
const DefaultOutboxSchedule = "*/5 * * * * *"

// RelayHandler is satisfied by commands.RelayTransitionsCommandHandler.
type RelayHandler interface {
	Handle(ctx context.Context, command commands.RelayTransitionsCommand) (commands.RelayReport, error)
}

// RelayObserver receives the outcome of each tick.
type RelayObserver interface {
	Relayed(record history.Record)
	RelayFailed()
	RelayBatch(size int)
}

// OutboxRelayJob publishes applied transitions to the notification sink on
// a cron schedule. A failed tick leaves the rows pending for the next one.
type OutboxRelayJob struct {
	handler  RelayHandler
	observer RelayObserver
	command  commands.RelayTransitionsCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOutboxRelayJob(
	handler RelayHandler,
	observer RelayObserver,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) (*OutboxRelayJob, error) {
	command, err := commands.NewRelayTransitionsCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultOutboxSchedule
	}
	return &OutboxRelayJob{
		handler:  handler,
		observer: observer,
		command:  command,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "outbox_relay_job"),
	}, nil
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Tick); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Tick runs one relay pass. It is exported so the pass can be driven
// without a scheduler.
func (j *OutboxRelayJob) Tick() {
	ctx := context.Background()

	report, err := j.handler.Handle(ctx, j.command)
	if err != nil {
		j.observer.RelayFailed()
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return
	}
	j.observer.RelayBatch(report.Picked)
	for _, record := range report.Published {
		j.observer.Relayed(record)
	}
	if report.PublishErr != nil {
		j.observer.RelayFailed()
		j.logger.ErrorContext(ctx, "Notification sink rejected transition",
			"error", report.PublishErr,
			"published", len(report.Published),
			"pending", report.Picked-len(report.Published),
		)
	}
}

// Stop waits for a running tick to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
