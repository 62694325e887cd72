// Package jobs runs the syncs from the `serve` command: a Runner that executes
// one job at a time and remembers recent runs, a cron Scheduler, and the HTTP
// routes to trigger jobs and inspect runs.
package jobs
