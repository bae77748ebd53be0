package services

import (
	"context"
	"fmt"
	"time"

	"eventcreator/internal/domain"
)

type moduleService struct {
	repo           domain.ModuleDataRepository
	configs        []domain.ModuleConfig
	now            func() time.Time
	contextTimeout time.Duration
}

// NewModuleService returns a ModuleService serving configs and storing
// module data in repo.
func NewModuleService(repo domain.ModuleDataRepository, configs []domain.ModuleConfig, timeout time.Duration) domain.ModuleService {
	return &moduleService{repo: repo, configs: configs, now: time.Now, contextTimeout: orDefaultTimeout(timeout)}
}

func (s *moduleService) Configs(context.Context) []domain.ModuleConfig {
	out := make([]domain.ModuleConfig, len(s.configs))
	for i, c := range s.configs {
		c.DefaultData = domain.CloneModuleData(c.DefaultData)
		out[i] = c
	}
	return out
}

func (s *moduleService) SaveData(ctx context.Context, moduleID string, data map[string]any) (*domain.ModuleSaved, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if moduleID == "" {
		return nil, fmt.Errorf("module id is required")
	}
	if data == nil {
		data = map[string]any{}
	}
	now := s.now().UTC()
	if err := s.repo.Save(ctx, moduleID, data, now); err != nil {
		return nil, fmt.Errorf("save module %s: %w", moduleID, err)
	}
	return &domain.ModuleSaved{Success: true, ModuleID: moduleID, SavedAt: now}, nil
}
