package workflow

import (
	"context"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/services/dashboard"
	"github.com/de-tools/project-atlas/pkg/store/file"
	"github.com/de-tools/project-atlas/pkg/store/s3"
	"github.com/rotisserie/eris"
)

// OpenSource is the SourceFactory for file and S3 profiles.
func OpenSource(ctx context.Context, profile domain.SourceProfile) (dashboard.RawSource, error) {
	switch profile.Type {
	case domain.ProfileTypeFile:
		source, err := file.NewSource(profile.Path)
		if err != nil {
			return nil, err
		}
		return source, nil
	case domain.ProfileTypeS3:
		source, err := s3.NewSourceFromConfig(ctx, s3.Settings{
			Bucket: profile.Bucket,
			Prefix: profile.Prefix,
			Region: profile.Region,
		})
		if err != nil {
			return nil, err
		}
		return source, nil
	default:
		return nil, eris.Errorf("unsupported profile type %q", profile.Type)
	}
}
