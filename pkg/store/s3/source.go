// Package s3 reads raw record exports stored as s3://bucket/prefix/<project>/<kind>.json.
package s3

import (
	"context"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/store/file"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Settings struct {
	Bucket string
	Prefix string
	Region string
}

type Source struct {
	client   ObjectGetter
	settings Settings
}

func NewSource(client ObjectGetter, settings Settings) (*Source, error) {
	if client == nil {
		return nil, eris.New("s3 client is nil")
	}
	if settings.Bucket == "" {
		return nil, eris.New("s3 bucket is required")
	}
	return &Source{client: client, settings: settings}, nil
}

// NewSourceFromConfig builds a client from the default AWS credential chain.
func NewSourceFromConfig(ctx context.Context, settings Settings) (*Source, error) {
	var opts []func(*config.LoadOptions) error
	if settings.Region != "" {
		opts = append(opts, config.WithRegion(settings.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "load aws config")
	}

	return NewSource(s3.NewFromConfig(cfg), settings)
}

func (s *Source) Key(projectID string, kind domain.RecordKind) string {
	return path.Join(s.settings.Prefix, projectID, string(kind)+".json")
}

// FetchRaw downloads and decodes one export. A missing object yields no records.
func (s *Source) FetchRaw(ctx context.Context, projectID string, kind domain.RecordKind) ([]domain.RawRecord, error) {
	if err := domain.ValidateProjectID(projectID); err != nil {
		return nil, err
	}
	key := s.Key(projectID, kind)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.settings.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			zerolog.Ctx(ctx).Debug().Str("bucket", s.settings.Bucket).Str("key", key).Msg("no export found")
			return []domain.RawRecord{}, nil
		}
		return nil, eris.Wrapf(err, "get s3://%s/%s", s.settings.Bucket, key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "read s3://%s/%s", s.settings.Bucket, key)
	}

	zerolog.Ctx(ctx).Debug().Str("bucket", s.settings.Bucket).Str("key", key).Int("bytes", len(data)).Msg("read export")
	return file.Decode(data, path.Ext(key))
}
