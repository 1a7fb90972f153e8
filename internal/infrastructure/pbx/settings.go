package pbx

import (
	"context"
	"errors"

	"centrex/internal/domain/extension"
	"centrex/internal/domain/setting"
)

// SyncSettings is the control-plane reachability configuration, loaded
// from the pbx category of system settings. Never mutated by the
// provisioning engine; operators edit it through the settings API, which
// invalidates the credential cache.
type SyncSettings struct {
	TokenURL     string
	MutationURL  string
	ClientID     string
	ClientSecret string
	Enabled      bool
}

// SettingsSource loads the current sync settings from storage.
type SettingsSource interface {
	LoadSyncSettings(ctx context.Context) (*SyncSettings, error)
}

type settingsSource struct {
	repo setting.Repository
}

// NewSettingsSource reads sync settings out of the system settings store.
func NewSettingsSource(repo setting.Repository) SettingsSource {
	return &settingsSource{repo: repo}
}

func (s *settingsSource) LoadSyncSettings(ctx context.Context) (*SyncSettings, error) {
	rows, err := s.repo.GetByCategory(ctx, setting.CategoryPBX)
	if err != nil {
		return nil, &extension.RemoteError{
			Kind: extension.RemoteErrorRejected,
			Step: StepConfig,
			Err:  err,
		}
	}

	cfg := &SyncSettings{}
	for _, row := range rows {
		switch row.Key() {
		case setting.KeyTokenURL:
			cfg.TokenURL = row.Value()
		case setting.KeyMutationURL:
			cfg.MutationURL = row.Value()
		case setting.KeyClientID:
			cfg.ClientID = row.Value()
		case setting.KeyClientSecret:
			cfg.ClientSecret = row.Value()
		case setting.KeyEnabled:
			cfg.Enabled = row.BoolValue()
		}
	}

	if cfg.TokenURL == "" || cfg.MutationURL == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &extension.RemoteError{
			Kind: extension.RemoteErrorRejected,
			Step: StepConfig,
			Err:  errors.New("remote sync configuration is incomplete"),
		}
	}

	return cfg, nil
}
