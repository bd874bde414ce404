package model

type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	HighPriority   int `json:"high_priority"`
	MediumPriority int `json:"medium_priority"`
	LowPriority    int `json:"low_priority"`
	Overdue        int `json:"overdue"`
	DueToday       int `json:"due_today"`
	Outdoor        int `json:"outdoor"`
}
