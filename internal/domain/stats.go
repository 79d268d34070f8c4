package domain

import "github.com/shopspring/decimal"

// Stats holds the trip-wide figures derived from an assembled bundle:
// total cost, per-category cost breakdown, and task completion counts.
// AllEvents and AllTasks are the flattened walk results so the UI can
// filter or chart without re-walking the day tree.
type Stats struct {
	TotalCost       decimal.Decimal              `json:"total_cost"`
	TotalTasks      int                          `json:"total_tasks"`
	DoneTasks       int                          `json:"done_tasks"`
	ProgressPercent int                          `json:"progress_percent"`
	CostByCategory  map[Category]decimal.Decimal `json:"cost_by_category"`
	AllEvents       []Event                      `json:"all_events"`
	AllTasks        []Task                       `json:"all_tasks"`
}
