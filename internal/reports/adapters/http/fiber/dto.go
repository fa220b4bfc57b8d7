package fiber

type ReportGroupResponse struct {
	Key            string `json:"key"`
	TotalCount     int64  `json:"total_count"`
	UniqueVisitors int64  `json:"unique_visitors"`
}

type ReportResponse struct {
	EventName      string                `json:"event_name"`
	From           int64                 `json:"from"`
	To             int64                 `json:"to"`
	TotalCount     int64                 `json:"total_count"`
	UniqueVisitors int64                 `json:"unique_visitors"`
	GroupBy        string                `json:"group_by,omitempty"`
	Groups         []ReportGroupResponse `json:"groups,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"invalid time range"`
}
