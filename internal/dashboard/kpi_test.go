package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryan-cox/taskboard/internal/model"
)

func TestComputeKPIs(t *testing.T) {
	k := ComputeKPIs(sampleDataset())

	assert.Equal(t, KPIs{Total: 7, Completed: 3, Incomplete: 2, Approved: 1}, k)
	assert.Equal(t, 1, k.Other())
}

func TestComputeKPIsAdditivity(t *testing.T) {
	d := sampleDataset()
	for _, sel := range []model.Selection{
		{},
		{Workspaces: []string{"Lake Cabin"}},
		{Dates: []string{"2024-03-02"}},
		{Workspaces: []string{"Nowhere"}},
	} {
		k := ComputeKPIs(Filter(d, sel))
		other := 0
		Filter(d, sel).Walk(func(_, _, _ string, rec model.TaskRecord) {
			switch rec.Status {
			case model.StatusComplete, model.StatusIncomplete, model.StatusApproved:
			default:
				other++
			}
		})
		assert.Equal(t, k.Total, k.Completed+k.Incomplete+k.Approved+other, "selection %+v", sel)
		assert.Equal(t, other, k.Other())
	}
}

func TestComputeKPIsMissingStatus(t *testing.T) {
	d := model.Dataset{"W": {"2024-01-01": {
		"a": {Task: "no status"},
		"b": {Status: "COMPLETE"},
	}}}

	assert.Equal(t, KPIs{Total: 2}, ComputeKPIs(d))
}

func TestComputeKPIsEmpty(t *testing.T) {
	assert.Equal(t, KPIs{}, ComputeKPIs(nil))
}

func TestStatusDistribution(t *testing.T) {
	k := KPIs{Total: 9, Completed: 4, Incomplete: 3, Approved: 2}
	assert.Equal(t, []StatusCount{
		{Label: "Completed", Count: 4},
		{Label: "Incomplete", Count: 3},
	}, k.StatusDistribution())
}
