// Package file reads raw records from exported fixture files laid out as <dir>/<project>/<kind>.{json,yaml,yml}.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var extensions = []string{".json", ".yaml", ".yml"}

type Source struct {
	dir string
}

func NewSource(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "fixture directory %s", dir)
	}
	if !info.IsDir() {
		return nil, eris.Errorf("%s is not a directory", dir)
	}
	return &Source{dir: dir}, nil
}

// FetchRaw returns the records of one kind exported for projectID. A missing file yields no records.
func (s *Source) FetchRaw(ctx context.Context, projectID string, kind domain.RecordKind) ([]domain.RawRecord, error) {
	if err := domain.ValidateProjectID(projectID); err != nil {
		return nil, err
	}
	for _, ext := range extensions {
		path := filepath.Join(s.dir, projectID, string(kind)+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, eris.Wrapf(err, "read %s", path)
		}

		zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("read fixture")
		return Decode(data, ext)
	}

	zerolog.Ctx(ctx).Debug().Str("project", projectID).Str("kind", string(kind)).Msg("no fixture found")
	return []domain.RawRecord{}, nil
}

// Projects lists the project directories under the fixture root.
func (s *Source) Projects() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, eris.Wrapf(err, "list %s", s.dir)
	}
	res := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			res = append(res, e.Name())
		}
	}
	return res, nil
}

// Decode parses a JSON or YAML document holding either a list of records or an object with a
// "records" list.
func Decode(data []byte, ext string) ([]domain.RawRecord, error) {
	var doc any
	var err error
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "decode %s records", ext)
	}

	if m, ok := doc.(map[string]any); ok {
		doc = m["records"]
	}

	items, ok := doc.([]any)
	if !ok {
		if doc == nil {
			return []domain.RawRecord{}, nil
		}
		return nil, eris.Errorf("expected a list of records, got %T", doc)
	}

	res := make([]domain.RawRecord, 0, len(items))
	for _, item := range items {
		// Entries that are not objects normalize to an empty record.
		m, _ := item.(map[string]any)
		res = append(res, domain.RawRecord(m))
	}
	return res, nil
}
