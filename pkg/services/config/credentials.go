package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// EnvSMTPPassword overrides the profile password when set, so the secret can
// live outside the credentials file.
const EnvSMTPPassword = "SALES_SMTP_PASSWORD"

type Credentials struct {
	Username string
	Password string
}

// Registry resolves mail-relay credentials by profile name.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetCredentials(ctx context.Context, profile string) (*Credentials, error)
}

type credRegistry struct {
	cfg *ini.File
}

// NewRegistry loads the credentials file at path, e.g. $HOME/.salesreporterrc.
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &credRegistry{cfg: cfg}, nil
}

func (cr *credRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *credRegistry) GetCredentials(_ context.Context, profile string) (*Credentials, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	creds := &Credentials{
		Username: section.Key("username").String(),
		Password: section.Key("password").String(),
	}
	if pw := os.Getenv(EnvSMTPPassword); pw != "" {
		creds.Password = pw
	}
	return creds, nil
}
