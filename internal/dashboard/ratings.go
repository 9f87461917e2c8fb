package dashboard

import "github.com/bryan-cox/taskboard/internal/model"

// RatingAverage is the mean of the positive ratings recorded for one task name.
type RatingAverage struct {
	Task    string  `json:"task"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RatingAverages lists averages in the order their task names were first
// met while walking the view.
type RatingAverages []RatingAverage

// Map returns the averages keyed by task name.
func (r RatingAverages) Map() map[string]float64 {
	m := make(map[string]float64, len(r))
	for _, avg := range r {
		m[avg.Task] = avg.Average
	}
	return m
}

// AverageRatings groups ratings by task name across every workspace and date
// of the view. Zero and absent ratings are skipped, so a name with no
// positive rating does not appear at all. A missing name groups under "".
func AverageRatings(view model.Dataset) RatingAverages {
	index := make(map[string]int)
	sums := make([]float64, 0)
	var result RatingAverages

	view.Walk(func(_, _, _ string, rec model.TaskRecord) {
		if !rec.Rated() {
			return
		}
		i, ok := index[rec.Task]
		if !ok {
			i = len(result)
			index[rec.Task] = i
			result = append(result, RatingAverage{Task: rec.Task})
			sums = append(sums, 0)
		}
		sums[i] += *rec.Rating
		result[i].Count++
	})

	for i := range result {
		result[i].Average = sums[i] / float64(result[i].Count)
	}
	return result
}
