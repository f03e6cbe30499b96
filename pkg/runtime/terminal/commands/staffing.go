package commands

import (
	"fmt"

	"github.com/de-tools/project-atlas/pkg/adapters"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/services/staffing"
	"github.com/spf13/cobra"
)

type ReassignCmd struct {
	scope
	employee string
	to       string
	env      Env
}

func NewReassignCmd(env Env) *cobra.Command {
	rc := &ReassignCmd{env: env}
	cmd := &cobra.Command{
		Use:   "reassign",
		Short: "Move an employee to another project and print the resulting allocation",
		RunE:  rc.run,
	}
	rc.bind(cmd, false)
	cmd.Flags().StringVar(&rc.employee, "employee", "", "Employee id")
	cmd.Flags().StringVar(&rc.to, "to", "", "Target project id")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (rc *ReassignCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	svc, err := rc.env.NewService(ctx, rc.dir)
	if err != nil {
		return err
	}

	c := staffing.NewReassignCommand(rc.employee, rc.to)
	rec, err := svc.Reassign(ctx, rc.project, c)
	if err != nil {
		return err
	}

	w := rc.env.Reporter.Writer()
	if rc.format == FormatJSON {
		risk := svc.Classify([]domain.Record{rec})
		return writeJSON(w, adapters.MapRecordDomainToApi(rec, risk[rec.ID]))
	}
	_, err = fmt.Fprintf(w, "%s (%s) reassigned from %s to %s [%s]\n", rec.Name, rec.ID, rc.project, rec.ProjectID, c.ID)
	return err
}

type AllocationCmd struct {
	scope
	env Env
}

func NewAllocationCmd(env Env) *cobra.Command {
	ac := &AllocationCmd{env: env}
	cmd := &cobra.Command{
		Use:   "allocation",
		Short: "Print employee head-count per project",
		RunE:  ac.run,
	}
	ac.bind(cmd, false)
	return cmd
}

func (ac *AllocationCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	svc, err := ac.env.NewService(ctx, ac.dir)
	if err != nil {
		return err
	}

	allocation, err := svc.Allocation(ctx, ac.project)
	if err != nil {
		return err
	}

	w := ac.env.Reporter.Writer()
	if ac.format == FormatJSON {
		return writeJSON(w, adapters.MapAllocationsDomainToApi(allocation))
	}
	for _, a := range allocation {
		if _, err := fmt.Fprintf(w, "%-12s assigned=%d on_leave=%d available=%d\n", a.ProjectID, a.Assigned, a.OnLeave, a.Available); err != nil {
			return err
		}
	}
	return nil
}
