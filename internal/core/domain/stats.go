package domain

type WeeklySummary struct {
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	TotalTasks     int            `json:"total_tasks"`
	CompletedTasks int            `json:"completed_tasks"`
	CompletionRate float64        `json:"completion_rate"`
	XPEarned       int            `json:"xp_earned"`
	CoinsEarned    int            `json:"coins_earned"`
	ByCategory     []CategoryStat `json:"by_category"`
}

type CategoryStat struct {
	Category  string `json:"category"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}
