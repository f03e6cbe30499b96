package adapters

import (
	"encoding/json"

	"github.com/de-tools/project-atlas/pkg/models/api"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/models/store"
	"github.com/rotisserie/eris"
)

// MapRecordDomainToApi converts r, annotating it with its risk level.
func MapRecordDomainToApi(r domain.Record, risk domain.RiskLevel) api.Record {
	res := api.Record{
		ID:              r.ID,
		Kind:            string(r.Kind),
		Name:            r.Name,
		ProjectID:       r.ProjectID,
		Status:          string(r.Status),
		Risk:            string(risk),
		Budget:          r.Budget,
		ContractValue:   r.ContractValue,
		Actual:          r.Actual,
		Rating:          r.Rating,
		PercentComplete: r.PercentComplete,
		StartDate:       r.StartDate,
		DueDate:         r.DueDate,
		Milestones:      make([]api.Milestone, 0, len(r.Milestones)),
		ChangeOrders:    make([]api.ChangeOrder, 0, len(r.ChangeOrders)),
		Tasks:           make([]api.Task, 0, len(r.Tasks)),
	}
	for _, m := range r.Milestones {
		res.Milestones = append(res.Milestones, api.Milestone{Name: m.Name, Due: m.Due, Completed: m.Completed})
	}
	for _, co := range r.ChangeOrders {
		res.ChangeOrders = append(res.ChangeOrders, api.ChangeOrder{ID: co.ID, Amount: co.Amount, Status: string(co.Status)})
	}
	for _, t := range r.Tasks {
		res.Tasks = append(res.Tasks, api.Task{ID: t.ID, Name: t.Name, Done: t.Done})
	}
	return res
}

func MapRecordsDomainToApi(records []domain.Record, risk map[string]domain.RiskLevel) []api.Record {
	res := make([]api.Record, 0, len(records))
	for _, r := range records {
		res = append(res, MapRecordDomainToApi(r, risk[r.ID]))
	}
	return res
}

func MapRecordDomainToStore(r domain.Record) (store.RecordRow, error) {
	payload := store.RecordPayload{
		Rating:          r.Rating,
		PercentComplete: r.PercentComplete,
		StartDate:       r.StartDate,
		DueDate:         r.DueDate,
	}
	for _, m := range r.Milestones {
		payload.Milestones = append(payload.Milestones, store.MilestonePayload{Name: m.Name, Due: m.Due, Completed: m.Completed})
	}
	for _, co := range r.ChangeOrders {
		payload.ChangeOrders = append(payload.ChangeOrders, store.ChangeOrderPayload{ID: co.ID, Amount: co.Amount, Status: string(co.Status)})
	}
	for _, t := range r.Tasks {
		payload.Tasks = append(payload.Tasks, store.TaskPayload{ID: t.ID, Name: t.Name, Done: t.Done})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return store.RecordRow{}, eris.Wrapf(err, "failed to encode payload of record %s", r.ID)
	}

	return store.RecordRow{
		ID:            r.ID,
		ProjectID:     r.ProjectID,
		Kind:          string(r.Kind),
		Name:          r.Name,
		Status:        string(r.Status),
		Budget:        r.Budget,
		ContractValue: r.ContractValue,
		Actual:        r.Actual,
		Payload:       data,
	}, nil
}

func MapRecordStoreToDomain(row store.RecordRow) (domain.Record, error) {
	var payload store.RecordPayload
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return domain.Record{}, eris.Wrapf(err, "failed to decode payload of record %s", row.ID)
		}
	}

	res := domain.Record{
		ID:              row.ID,
		Kind:            domain.RecordKind(row.Kind),
		Name:            row.Name,
		ProjectID:       row.ProjectID,
		Status:          domain.Status(row.Status),
		Budget:          row.Budget,
		ContractValue:   row.ContractValue,
		Actual:          row.Actual,
		Rating:          payload.Rating,
		PercentComplete: payload.PercentComplete,
		StartDate:       payload.StartDate,
		DueDate:         payload.DueDate,
	}
	for _, m := range payload.Milestones {
		res.Milestones = append(res.Milestones, domain.Milestone{Name: m.Name, Due: m.Due, Completed: m.Completed})
	}
	for _, co := range payload.ChangeOrders {
		res.ChangeOrders = append(res.ChangeOrders, domain.ChangeOrder{ID: co.ID, Amount: co.Amount, Status: domain.ChangeOrderStatus(co.Status)})
	}
	for _, t := range payload.Tasks {
		res.Tasks = append(res.Tasks, domain.Task{ID: t.ID, Name: t.Name, Done: t.Done})
	}
	return res, nil
}
