package domain

// StatusCounts tallies a set of tasks by status.
type StatusCounts struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	// Overdue counts tasks past their deadline that are not complete.
	Overdue int `json:"overdue"`
}

// TaskSummary backs the dashboard cards: tasks on the user's plate and
// tasks the user handed out.
type TaskSummary struct {
	User         string       `json:"user"`
	AssignedToMe StatusCounts `json:"assigned_to_me"`
	AssignedByMe StatusCounts `json:"assigned_by_me"`
}
