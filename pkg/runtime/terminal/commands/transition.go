package commands

import (
	"fmt"

	"github.com/de-tools/project-atlas/pkg/adapters"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type TransitionCmd struct {
	scope
	buyout string
	event  string
	env    Env
}

func NewTransitionCmd(env Env) *cobra.Command {
	tc := &TransitionCmd{env: env}
	cmd := &cobra.Command{
		Use:   "transition",
		Short: "Apply a lifecycle event (solicit, negotiate, award, execute, cancel, reopen) to a buyout",
		RunE:  tc.run,
	}
	tc.bind(cmd, false)
	cmd.Flags().StringVar(&tc.buyout, "buyout", "", "Buyout id")
	cmd.Flags().StringVar(&tc.event, "event", "", "Lifecycle event")
	_ = cmd.MarkFlagRequired("buyout")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func (tc *TransitionCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	svc, err := tc.env.NewService(ctx, tc.dir)
	if err != nil {
		return err
	}

	rec, err := svc.Transition(ctx, tc.project, tc.buyout, tc.event)
	if err != nil {
		return err
	}

	w := tc.env.Reporter.Writer()
	if tc.format == FormatJSON {
		risk := svc.Classify([]domain.Record{rec})
		return writeJSON(w, adapters.MapRecordDomainToApi(rec, risk[rec.ID]))
	}
	_, err = fmt.Fprintf(w, "%s (%s) is now %s\n", rec.Name, rec.ID, rec.Status)
	return err
}
