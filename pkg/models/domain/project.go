package domain

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ValidateProjectID rejects ids that cannot name a single path segment.
func ValidateProjectID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return eris.Wrap(ErrInvalidCommand, "project id is required")
	case id == "." || id == "..", strings.ContainsAny(id, `/\`):
		return eris.Wrapf(ErrInvalidCommand, "invalid project id %q", id)
	}
	return nil
}
