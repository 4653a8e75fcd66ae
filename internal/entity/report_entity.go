package entity

import "time"

// BatchReport aggregates one batch invocation for the operator channel.
type BatchReport struct {
	Job        string
	Checked    int
	Approved   int
	Expired    int
	Sent       int
	Failed     int
	Updated    int
	Errors     []string
	StartedAt  time.Time
	FinishedAt time.Time
}

func NewBatchReport(job string) *BatchReport {
	return &BatchReport{Job: job, StartedAt: time.Now()}
}

func (r *BatchReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// HasActivity reports whether the run did anything an operator cares about.
func (r *BatchReport) HasActivity() bool {
	return r.Approved > 0 || r.Expired > 0 || r.Sent > 0 || r.Failed > 0 || r.Updated > 0 || len(r.Errors) > 0
}

func (r *BatchReport) Finish() *BatchReport {
	r.FinishedAt = time.Now()
	return r
}
