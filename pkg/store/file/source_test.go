package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, project, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, project), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, project, name), []byte(content), 0o644))
}

func TestSource_FetchRaw(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "P1", "buyout.json", `[{"id":"BO-1","budget":"$1,000"},{"id":"BO-2"}]`)
	writeFixture(t, dir, "P1", "employee.yaml", "records:\n  - id: E-1\n    status: Assigned\n")

	s, err := NewSource(dir)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("json list", func(t *testing.T) {
		got, err := s.FetchRaw(ctx, "P1", domain.RecordKindBuyout)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "BO-1", got[0]["id"])
		assert.Equal(t, "$1,000", got[0]["budget"])
	})

	t.Run("yaml records object", func(t *testing.T) {
		got, err := s.FetchRaw(ctx, "P1", domain.RecordKindEmployee)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Assigned", got[0]["status"])
	})

	t.Run("missing file", func(t *testing.T) {
		got, err := s.FetchRaw(ctx, "P1", domain.RecordKindProject)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ids outside the fixture root", func(t *testing.T) {
		writeFixture(t, dir, "", "buyout.json", `[{"id":"ROOT"}]`)
		for _, id := range []string{"..", ".", "P1/..", ""} {
			got, err := s.FetchRaw(ctx, id, domain.RecordKindBuyout)
			assert.Nil(t, got)
			assert.True(t, eris.Is(err, domain.ErrInvalidCommand), "%q: got %v", id, err)
		}
	})

	t.Run("projects", func(t *testing.T) {
		got, err := s.Projects()
		require.NoError(t, err)
		assert.Equal(t, []string{"P1"}, got)
	})
}

func TestNewSource_Errors(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	f := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(f, []byte("[]"), 0o644))
	_, err = NewSource(f)
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		ext     string
		want    int
		wantErr bool
	}{
		{"empty json list", `[]`, ".json", 0, false},
		{"null document", `null`, ".json", 0, false},
		{"non-object entries", `[1, "x", {"id": "a"}]`, ".json", 3, false},
		{"invalid json", `[{`, ".json", 0, true},
		{"scalar document", `42`, ".json", 0, true},
		{"yaml list", "- id: a\n- id: b\n", ".yml", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data), tt.ext)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}
