package domain

// Workload is an officer's complaint count partitioned by lifecycle stage.
type Workload struct {
	Assigned   int `json:"assigned"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Other      int `json:"other"`
}

// Total returns the number of complaints the workload was computed over.
func (w Workload) Total() int {
	return w.Assigned + w.InProgress + w.Completed + w.Other
}

// AnalyticsOverview is the admin aggregate over all complaints.
type AnalyticsOverview struct {
	TotalComplaints   int64                       `json:"totalComplaints"`
	Pending           int64                       `json:"pending"`
	Assigned          int64                       `json:"assigned"`
	InProgress        int64                       `json:"inProgress"`
	Resolved          int64                       `json:"resolved"`
	HighPriority      int64                       `json:"highPriority"`
	Officers          int64                       `json:"officers"`
	Workload          map[string]int64            `json:"workload"`
	PriorityBreakdown map[ComplaintPriority]int64 `json:"priorityBreakdown"`
	StatusBreakdown   map[ComplaintStatus]int64   `json:"statusBreakdown"`
}
