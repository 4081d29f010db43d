package service

import (
	"context"

	"groupmanagement/internal/domain"
)

type configurationService struct {
	model domain.ConfigurationModel
}

// NewConfigurationService serves a fixed snapshot of the runtime configuration.
func NewConfigurationService(model domain.ConfigurationModel) ConfigurationService {
	return &configurationService{model: model}
}

func (s *configurationService) GetConfiguration(ctx context.Context) domain.ConfigurationModel {
	return s.model
}
