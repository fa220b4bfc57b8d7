package domain

type Report struct {
	EventName      string
	From           int64 // unix second
	To             int64 // unix second
	TotalCount     int64
	UniqueVisitors int64

	GroupBy string        // "", "channel", "source", "medium", "campaign", "time"
	Groups  []ReportGroup // per-group breakdown
}

type ReportGroup struct {
	Key            string // e.g. "facebook" or "2025-12-07T10:00:00Z"
	TotalCount     int64
	UniqueVisitors int64
}

// NoValueKey labels rows whose grouping column is empty.
const NoValueKey = "(none)"
