package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"
)

type settingsService struct {
	lookups storage.LookupRepository
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(lookups storage.LookupRepository) SettingsService {
	return &settingsService{lookups: lookups}
}

func (s *settingsService) List(ctx context.Context, kind models.LookupKind) ([]models.LookupItem, error) {
	items, err := s.lookups.List(ctx, kind)
	if err != nil {
		return nil, MapRepoError(err, "listing "+string(kind))
	}
	return items, nil
}

func (s *settingsService) Create(ctx context.Context, req *dto.LookupRequest) (*models.LookupItem, error) {
	item, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	created, err := s.lookups.Create(ctx, req.Kind, item)
	if err != nil {
		return nil, s.mapWriteError(err, req)
	}
	slog.InfoContext(ctx, "reference item created", "kind", req.Kind, "id", created.ID)
	return created, nil
}

func (s *settingsService) Update(ctx context.Context, req *dto.LookupRequest) (*models.LookupItem, error) {
	item, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	item.ID = req.ID
	updated, err := s.lookups.Update(ctx, req.Kind, item)
	if err != nil {
		return nil, s.mapWriteError(err, req)
	}
	return updated, nil
}

func (s *settingsService) Delete(ctx context.Context, kind models.LookupKind, id int) error {
	if err := s.lookups.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, storage.ErrForeignKey) {
			return fmt.Errorf("%w: %s %d is used by existing jobs", ErrConflict, kind, id)
		}
		return MapRepoError(err, "deleting "+string(kind))
	}
	return nil
}

// prepare trims the payload and rejects names already used by another row.
func (s *settingsService) prepare(ctx context.Context, req *dto.LookupRequest) (*models.LookupItem, error) {
	name := strings.Join(strings.Fields(req.Name), " ")
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	taken, err := s.lookups.NameTaken(ctx, req.Kind, name, req.ID)
	if err != nil {
		return nil, MapRepoError(err, "checking name")
	}
	if taken {
		return nil, fmt.Errorf("%w: %q already exists", ErrConflict, name)
	}
	var description *string
	if req.Description != nil {
		description = optionalString(*req.Description)
	}
	return &models.LookupItem{Name: name, Description: description}, nil
}

// mapWriteError reports a lost race on the unique name index as a conflict.
func (s *settingsService) mapWriteError(err error, req *dto.LookupRequest) error {
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %q already exists", ErrConflict, strings.TrimSpace(req.Name))
	}
	return MapRepoError(err, "saving "+string(req.Kind))
}
