// Package jobs provides scheduled background tasks for the order item
// lifecycle.
//
// The only job today is ExpirySweepJob, the clock-driven half of the holding
// window: every tick it dispatches the pending items whose delay timers have
// elapsed. The manual send-now path covers the user-driven half; both funnel
// into the same guarded dispatch transition.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatchExpiredHandler, time.Second, 5*time.Second, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The first sweep runs when the startup grace period elapses; after that the
// sweep follows an @every schedule, one-second period by default.
//
// # Error Handling
//
// A failed sweep tick is logged and the next tick proceeds normally; per-item
// failures inside a sweep are handled by the command handler and never abort
// the tick.
package jobs
