package commands

import (
	"os"

	"github.com/de-tools/project-atlas/pkg/services/export"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	scope
	out string
	env Env
}

func NewReportCmd(env Env) *cobra.Command {
	rc := &ReportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a dashboard report as text, JSON or an Excel workbook",
		RunE:  rc.run,
	}
	rc.bind(cmd, true)
	cmd.Flags().StringVar(&rc.out, "out", "", "Output file (required for xlsx)")
	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	kind, err := rc.recordKind()
	if err != nil {
		return err
	}
	if rc.format == FormatXLSX && rc.out == "" {
		return eris.New("--out is required for xlsx reports")
	}

	svc, err := rc.env.NewService(ctx, rc.dir)
	if err != nil {
		return err
	}

	report, recs, err := svc.Report(ctx, rc.project, kind)
	if err != nil {
		return eris.Wrap(err, "failed to build report")
	}

	switch rc.format {
	case FormatXLSX:
		return export.Save(rc.out, report, recs, svc.Formatter())
	case FormatJSON:
		if rc.out == "" {
			return writeJSON(rc.env.Reporter.Writer(), report)
		}
		f, err := os.Create(rc.out)
		if err != nil {
			return eris.Wrapf(err, "failed to create %s", rc.out)
		}
		defer f.Close()
		return writeJSON(f, report)
	default:
		return rc.env.Reporter.Handle(report)
	}
}
