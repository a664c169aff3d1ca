// Package jobs provides the scheduled background tasks of the logistics core.
//
// Jobs are cron entries built on github.com/robfig/cron/v3 with seconds
// precision. Each job issues one command per tick using the tick time as the
// command clock.
//
// # Available Jobs
//
//  1. OutboxRelayJob - publishes pending outbox messages to the event stream
//     and the notification queue, then marks them processed
//  2. PickupWindowJob - opens expired_window returns for parcels kept at a
//     pickup station longer than the station allows
//
// # Usage
//
//	manager, err := jobs.NewJobManager(relayHandler, expireHandler, jobs.Config{
//		OutboxRelaySchedule:  "*/5 * * * * *",
//		OutboxBatchSize:      100,
//		PickupWindowSchedule: "0 0 * * * *",
//		PickupWindowLimit:    500,
//	}, logger)
//	if err != nil {
//		return err
//	}
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll(ctx)
//
// # Overlap
//
// A tick that fires while the previous run of the same job is still going is
// skipped, so one job never races itself over the same outbox rows or
// parcels.
package jobs
