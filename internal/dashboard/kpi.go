package dashboard

import "github.com/bryan-cox/taskboard/internal/model"

// Labels used by the status distribution.
const (
	LabelCompleted  = "Completed"
	LabelIncomplete = "Incomplete"
)

// KPIs are the scalar counts shown on the dashboard cards.
type KPIs struct {
	Total      int `json:"totalTasks"`
	Completed  int `json:"completedTasks"`
	Incomplete int `json:"incompleteTasks"`
	Approved   int `json:"approvedTasks"`
}

// Other returns the number of records whose status is missing or not one of
// the summarized tags.
func (k KPIs) Other() int {
	return k.Total - k.Completed - k.Incomplete - k.Approved
}

// StatusCount is one labelled slice of the status distribution.
type StatusCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StatusDistribution returns the Completed and Incomplete counts, in that
// order, for the status chart.
func (k KPIs) StatusDistribution() []StatusCount {
	return []StatusCount{
		{Label: LabelCompleted, Count: k.Completed},
		{Label: LabelIncomplete, Count: k.Incomplete},
	}
}

// ComputeKPIs counts the records of a filtered view in a single pass.
func ComputeKPIs(view model.Dataset) KPIs {
	var k KPIs
	for _, workspace := range view {
		for _, group := range workspace {
			for _, rec := range group {
				k.Total++
				switch rec.Status {
				case model.StatusComplete:
					k.Completed++
				case model.StatusIncomplete:
					k.Incomplete++
				case model.StatusApproved:
					k.Approved++
				}
			}
		}
	}
	return k
}
