package config

import (
	"context"
	"strings"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/rotisserie/eris"
	"gopkg.in/ini.v1"
)

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, profile string) (domain.SourceProfile, error)
}

type profileRegistry struct {
	cfg *ini.File
}

// NewRegistry loads data-source profiles from an INI file:
//
//	[site-exports]
//	type   = s3
//	bucket = atlas-exports
//	prefix = v1
//	region = us-east-1
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to load profiles from %s", path)
	}
	return &profileRegistry{cfg: cfg}, nil
}

// NewLooseRegistry is NewRegistry for an optional file: a missing path yields no profiles.
func NewLooseRegistry(path string) (Registry, error) {
	cfg, err := ini.LooseLoad(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to load profiles from %s", path)
	}
	return &profileRegistry{cfg: cfg}, nil
}

func (r *profileRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *profileRegistry) GetProfile(_ context.Context, profile string) (domain.SourceProfile, error) {
	section, err := r.cfg.GetSection(profile)
	if err != nil || len(section.Keys()) == 0 {
		return domain.SourceProfile{}, eris.Wrapf(domain.ErrNotFound, "profile %s", profile)
	}

	res := domain.SourceProfile{
		Name:   profile,
		Type:   domain.ProfileType(strings.ToLower(section.Key("type").MustString(string(domain.ProfileTypeFile)))),
		Path:   section.Key("path").String(),
		Bucket: section.Key("bucket").String(),
		Prefix: section.Key("prefix").String(),
		Region: section.Key("region").String(),
	}

	switch res.Type {
	case domain.ProfileTypeFile:
		if res.Path == "" {
			return domain.SourceProfile{}, eris.Errorf("profile %s: path is required", profile)
		}
	case domain.ProfileTypeS3:
		if res.Bucket == "" {
			return domain.SourceProfile{}, eris.Errorf("profile %s: bucket is required", profile)
		}
	default:
		return domain.SourceProfile{}, eris.Errorf("profile %s: unsupported type %q", profile, res.Type)
	}
	return res, nil
}
