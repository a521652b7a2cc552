// Package task contains the scheduled jobs: the daily content pipelines
// and the housekeeping jobs for gems, reminders, and plan sync. Jobs run
// under a cron scheduler and report per-unit outcomes through RunReport;
// an item failure is recorded and skipped while an infrastructure failure
// aborts the run.
package task
