package task

import "time"

// Result is the outcome of processing one unit of work, usually a user.
type Result struct {
	Unit string
	Err  error
}

// OK reports whether the unit was processed without error.
func (r Result) OK() bool {
	return r.Err == nil
}

// RunReport aggregates one scheduled run. Item-level failures land here
// as failed Results instead of aborting the run; only infrastructure
// failures (the run cannot even enumerate its work) surface as errors
// from Job.Run.
type RunReport struct {
	Job        string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

// NewRunReport starts a report for the named job.
func NewRunReport(job string) *RunReport {
	return &RunReport{Job: job, StartedAt: time.Now().UTC()}
}

// Record appends one unit's outcome.
func (r *RunReport) Record(unit string, err error) {
	r.Results = append(r.Results, Result{Unit: unit, Err: err})
}

// Finish stamps the report's end time and returns it for chaining.
func (r *RunReport) Finish() *RunReport {
	r.FinishedAt = time.Now().UTC()
	return r
}

// Succeeded counts units processed without error.
func (r *RunReport) Succeeded() int {
	var n int
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed counts units that errored.
func (r *RunReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Duration is the wall-clock span of the run.
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
