package setting

import (
	"context"
	"errors"
	"strconv"

	"centrex/internal/domain/setting"
	apperrors "centrex/internal/shared/errors"
	"centrex/internal/shared/logger"
	"centrex/internal/shared/utils"
)

// CacheInvalidator is notified after the sync settings change so cached
// credentials are re-read on the next control-plane request.
type CacheInvalidator interface {
	Invalidate()
}

// TransactionRunner executes a function inside a database transaction so
// a multi-row settings update lands atomically.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PBXSettingsDTO is the operator view of the sync settings. The client
// secret is write-only: reads report only whether one is stored.
type PBXSettingsDTO struct {
	TokenURL        string `json:"token_url"`
	MutationURL     string `json:"mutation_url"`
	ClientID        string `json:"client_id"`
	ClientSecretSet bool   `json:"client_secret_set"`
	Enabled         bool   `json:"enabled"`
}

type UpdatePBXSettingsCommand struct {
	TokenURL    string
	MutationURL string
	ClientID    string
	// ClientSecret is stored only when non-empty so operators can edit
	// other fields without re-entering the secret.
	ClientSecret string
	Enabled      bool
	UpdatedBy    uint
}

// Service manages the control-plane sync settings stored in the system
// settings table.
type Service struct {
	settingRepo setting.Repository
	invalidator CacheInvalidator
	txManager   TransactionRunner
	logger      logger.Interface
}

func NewService(settingRepo setting.Repository, invalidator CacheInvalidator, txManager TransactionRunner, logger logger.Interface) *Service {
	return &Service{
		settingRepo: settingRepo,
		invalidator: invalidator,
		txManager:   txManager,
		logger:      logger,
	}
}

func (s *Service) GetPBXSettings(ctx context.Context) (*PBXSettingsDTO, error) {
	settings, err := s.settingRepo.GetByCategory(ctx, setting.CategoryPBX)
	if err != nil {
		s.logger.Errorw("failed to load pbx settings", "error", err)
		return nil, err
	}

	dto := &PBXSettingsDTO{}
	for _, st := range settings {
		switch st.Key() {
		case setting.KeyTokenURL:
			dto.TokenURL = st.Value()
		case setting.KeyMutationURL:
			dto.MutationURL = st.Value()
		case setting.KeyClientID:
			dto.ClientID = st.Value()
		case setting.KeyClientSecret:
			dto.ClientSecretSet = st.Value() != ""
		case setting.KeyEnabled:
			dto.Enabled = st.BoolValue()
		}
	}
	return dto, nil
}

func (s *Service) UpdatePBXSettings(ctx context.Context, cmd UpdatePBXSettingsCommand) error {
	if cmd.Enabled {
		if cmd.ClientID == "" {
			return apperrors.NewValidationError("client ID is required when sync is enabled")
		}
		if err := utils.ValidateEndpointURL("token_url", cmd.TokenURL); err != nil {
			return err
		}
		if err := utils.ValidateEndpointURL("mutation_url", cmd.MutationURL); err != nil {
			return err
		}
	}

	values := map[string]string{
		setting.KeyTokenURL:    cmd.TokenURL,
		setting.KeyMutationURL: cmd.MutationURL,
		setting.KeyClientID:    cmd.ClientID,
		setting.KeyEnabled:     strconv.FormatBool(cmd.Enabled),
	}
	if cmd.ClientSecret != "" {
		values[setting.KeyClientSecret] = cmd.ClientSecret
	}

	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		for key, value := range values {
			valueType := setting.ValueTypeString
			if key == setting.KeyEnabled {
				valueType = setting.ValueTypeBool
			}
			st, err := setting.NewSystemSetting(setting.CategoryPBX, key, value, valueType, cmd.UpdatedBy)
			if err != nil {
				return apperrors.NewValidationError(err.Error())
			}
			if err := s.settingRepo.Upsert(txCtx, st); err != nil {
				s.logger.Errorw("failed to store pbx setting", "key", key, "error", err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Drop cached credentials so the next sync uses the new settings.
	s.invalidator.Invalidate()
	s.logger.Infow("pbx sync settings updated", "updated_by", cmd.UpdatedBy, "enabled", cmd.Enabled)
	return nil
}

// HasPBXSettings reports whether any sync configuration has been stored
// yet, used by the settings page to distinguish unconfigured from
// disabled.
func (s *Service) HasPBXSettings(ctx context.Context) (bool, error) {
	_, err := s.settingRepo.GetByKey(ctx, setting.CategoryPBX, setting.KeyTokenURL)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
