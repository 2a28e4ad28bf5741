package jobs

import (
	"context"
	"log/slog"

	"traiteur/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EquipmentReturnJob reminds customers holding loaned equipment past the
// return window. Runs every morning at 08:00.
type EquipmentReturnJob struct {
	handler commands.RemindEquipmentReturnCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEquipmentReturnJob creates the daily equipment return reminder job.
func NewEquipmentReturnJob(handler commands.RemindEquipmentReturnCommandHandler, logger *slog.Logger) *EquipmentReturnJob {
	return &EquipmentReturnJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "equipment_return_job"),
	}
}

// Start schedules the reminder job.
func (j *EquipmentReturnJob) Start() error {
	_, err := j.cron.AddFunc("0 8 * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewRemindEquipmentReturnCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Equipment return job misconfigured", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Equipment return job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Equipment return job started (running daily at 08:00)")
	return nil
}

// Stop stops the equipment return job.
func (j *EquipmentReturnJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Equipment return job stopped")
}
