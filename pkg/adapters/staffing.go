package adapters

import (
	"github.com/de-tools/project-atlas/pkg/models/api"
	"github.com/de-tools/project-atlas/pkg/models/domain"
)

func MapAllocationsDomainToApi(allocations []domain.Allocation) []api.Allocation {
	res := make([]api.Allocation, 0, len(allocations))
	for _, a := range allocations {
		res = append(res, api.Allocation{
			ProjectID: a.ProjectID,
			Assigned:  a.Assigned,
			OnLeave:   a.OnLeave,
			Available: a.Available,
		})
	}
	return res
}
