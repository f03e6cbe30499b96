package commands

import (
	"fmt"

	"github.com/de-tools/project-atlas/pkg/store/file"
	"github.com/spf13/cobra"
)

type ProjectsCmd struct {
	dir    string
	format string
	env    Env
}

func NewProjectsCmd(env Env) *cobra.Command {
	pc := &ProjectsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the projects exported under the fixture directory",
		RunE:  pc.run,
	}
	cmd.Flags().StringVar(&pc.dir, "dir", "fixtures", "Directory with <project>/<kind>.json|yaml exports")
	cmd.Flags().StringVar(&pc.format, "format", FormatText, "Output format (text, json)")
	return cmd
}

func (pc *ProjectsCmd) run(_ *cobra.Command, _ []string) error {
	src, err := file.NewSource(pc.dir)
	if err != nil {
		return err
	}
	projects, err := src.Projects()
	if err != nil {
		return err
	}

	w := pc.env.Reporter.Writer()
	if pc.format == FormatJSON {
		return writeJSON(w, projects)
	}
	for _, p := range projects {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}
