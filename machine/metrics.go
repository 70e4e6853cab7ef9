package machine

import "sync/atomic"

type MetricsSnapshot struct {
	JobsStarted    int64
	JobsCompleted  int64
	JobsCancelled  int64
	UpdatesApplied int64
	UpdatesDropped int64
	Subscribers    int64
}

// Metrics counts machine activity. All methods are safe for concurrent use.
type Metrics struct {
	jobsStarted    atomic.Int64
	jobsCompleted  atomic.Int64
	jobsCancelled  atomic.Int64
	updatesApplied atomic.Int64
	updatesDropped atomic.Int64
	subscribers    atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordJobStarted(delta int) {
	m.jobsStarted.Add(int64(delta))
}

func (m *Metrics) RecordJobCompleted(delta int) {
	m.jobsCompleted.Add(int64(delta))
}

func (m *Metrics) RecordJobCancelled(delta int) {
	m.jobsCancelled.Add(int64(delta))
}

func (m *Metrics) RecordUpdateApplied(delta int) {
	m.updatesApplied.Add(int64(delta))
}

func (m *Metrics) RecordUpdateDropped(delta int) {
	m.updatesDropped.Add(int64(delta))
}

func (m *Metrics) RecordSubscriber(delta int) {
	m.subscribers.Add(int64(delta))
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		JobsStarted:    m.jobsStarted.Load(),
		JobsCompleted:  m.jobsCompleted.Load(),
		JobsCancelled:  m.jobsCancelled.Load(),
		UpdatesApplied: m.updatesApplied.Load(),
		UpdatesDropped: m.updatesDropped.Load(),
		Subscribers:    m.subscribers.Load(),
	}
}
