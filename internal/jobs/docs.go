// Package jobs provides scheduled background tasks for the catering backend.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(remindHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// EquipmentReturnJob runs daily at 08:00 and reminds every customer whose
// order sits in retour_materiel past the ten business day return window.
// Reminder sends are best-effort; failures are logged and retried on the
// next run.
package jobs
