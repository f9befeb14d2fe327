package config

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
)

// Registry resolves named report profiles.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.ReportProfile, error)
}

type profileRegistry struct {
	cfg *ini.File
}

// NewRegistry loads report profiles from an INI file where each section is a profile:
//
//	[lease]
//	title = Lease Review
//	author = Contracts Team
//	file_stem = lease_review
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return &profileRegistry{cfg: cfg}, nil
}

// NewStaticRegistry serves only the built-in default profile.
func NewStaticRegistry() Registry {
	return &profileRegistry{cfg: ini.Empty()}
}

func (pr *profileRegistry) GetProfiles(_ context.Context) ([]string, error) {
	profiles := []string{domain.DefaultProfileName}
	for _, section := range pr.cfg.Sections() {
		if len(section.Keys()) == 0 || section.Name() == ini.DefaultSection || section.Name() == domain.DefaultProfileName {
			continue
		}
		profiles = append(profiles, section.Name())
	}
	return profiles, nil
}

// GetProfile fills unset keys from the default profile. A [default] section overrides the built-in values.
func (pr *profileRegistry) GetProfile(_ context.Context, name string) (domain.ReportProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultProfileName
	}

	profile := domain.DefaultProfile()
	if base, err := pr.cfg.GetSection(domain.DefaultProfileName); err == nil {
		profile = applySection(profile, base)
	}
	if name == domain.DefaultProfileName {
		return profile, nil
	}

	section, err := pr.cfg.GetSection(name)
	if err != nil {
		return domain.ReportProfile{}, fmt.Errorf("profile %s not found", name)
	}
	profile = applySection(profile, section)
	profile.Name = name
	return profile, nil
}

func applySection(p domain.ReportProfile, section *ini.Section) domain.ReportProfile {
	if v := section.Key("title").String(); v != "" {
		p.Title = v
	}
	if v := section.Key("author").String(); v != "" {
		p.Author = v
	}
	if v := section.Key("file_stem").String(); v != "" {
		p.FileStem = v
	}
	return p
}
