package commands

import (
	"github.com/de-tools/project-atlas/pkg/adapters"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	scope
	env Env
}

func NewSummaryCmd(env Env) *cobra.Command {
	sc := &SummaryCmd{env: env}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the summary metrics of a project",
		RunE:  sc.run,
	}
	sc.bind(cmd, true)
	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	kind, err := sc.recordKind()
	if err != nil {
		return err
	}

	svc, err := sc.env.NewService(ctx, sc.dir)
	if err != nil {
		return err
	}

	m, err := svc.Summary(ctx, sc.project, kind)
	if err != nil {
		return eris.Wrap(err, "failed to compute summary")
	}

	res := adapters.MapSummaryMetricsDomainToApi(m, svc.Formatter())
	if sc.format == FormatJSON {
		return writeJSON(sc.env.Reporter.Writer(), res)
	}
	return sc.env.Reporter.Summary(res)
}

type InsightsCmd struct {
	scope
	env Env
}

func NewInsightsCmd(env Env) *cobra.Command {
	ic := &InsightsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Print the insights derived for a project",
		RunE:  ic.run,
	}
	ic.bind(cmd, true)
	return cmd
}

func (ic *InsightsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	kind, err := ic.recordKind()
	if err != nil {
		return err
	}

	svc, err := ic.env.NewService(ctx, ic.dir)
	if err != nil {
		return err
	}

	insights, err := svc.Insights(ctx, ic.project, kind)
	if err != nil {
		return eris.Wrap(err, "failed to derive insights")
	}

	res := adapters.MapInsightsDomainToApi(insights)
	if ic.format == FormatJSON {
		return writeJSON(ic.env.Reporter.Writer(), res)
	}
	return ic.env.Reporter.Insights(res)
}
