package commands

import (
	"context"
	"encoding/json"
	"io"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/project-atlas/pkg/services/dashboard"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// ServiceFactory builds a dashboard service over the fixtures in dir.
type ServiceFactory func(ctx context.Context, dir string) (*dashboard.Service, error)

type Env struct {
	NewService ServiceFactory
	Reporter   *export.Reporter
}

// scope holds the flags shared by the commands reading one project.
type scope struct {
	dir     string
	project string
	kind    string
	format  string
}

func (s *scope) bind(cmd *cobra.Command, withKind bool) {
	cmd.Flags().StringVar(&s.dir, "dir", "fixtures", "Directory with <project>/<kind>.json|yaml exports")
	cmd.Flags().StringVar(&s.project, "project", "", "Project id")
	cmd.Flags().StringVar(&s.format, "format", FormatText, "Output format (text, json)")
	if withKind {
		cmd.Flags().StringVar(&s.kind, "kind", string(domain.RecordKindBuyout), "Record kind (buyout, project, employee)")
	}
	_ = cmd.MarkFlagRequired("project")
}

func (s *scope) recordKind() (domain.RecordKind, error) {
	kind, ok := domain.ParseRecordKind(s.kind)
	if !ok {
		return "", eris.Errorf("unknown record kind %q", s.kind)
	}
	return kind, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "failed to encode output")
}
