package jobs

import (
	"fmt"
	"log/slog"

	"traiteur/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	equipmentReturnJob *EquipmentReturnJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	remindEquipmentReturnHandler commands.RemindEquipmentReturnCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		equipmentReturnJob: NewEquipmentReturnJob(remindEquipmentReturnHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.equipmentReturnJob.Start(); err != nil {
		return fmt.Errorf("failed to start equipment return job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.equipmentReturnJob.Stop()
}
