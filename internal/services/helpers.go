package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"recruit-api/internal/storage"
	"recruit-api/internal/storage/files"
	"recruit-api/internal/transport/dto"
)

// MapRepoError maps storage errors to service errors
func MapRepoError(err error, operation string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	case errors.Is(err, storage.ErrForeignKey):
		return fmt.Errorf("%w: %s references a missing record", ErrValidation, operation)
	}
	slog.Error("unexpected repository error", "operation", operation, "error", err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// mapUploadError turns upload policy failures into validation errors.
func mapUploadError(err error, field string) error {
	if errors.Is(err, files.ErrTooLarge) || errors.Is(err, files.ErrEmptyFile) ||
		errors.Is(err, files.ErrExtensionForbidden) || errors.Is(err, files.ErrContentMismatch) {
		return fmt.Errorf("%w: %s: %v", ErrValidation, field, err)
	}
	slog.Error("storing upload failed", "field", field, "error", err)
	return fmt.Errorf("internal error storing %s: %w", field, err)
}

// removeStored deletes uploaded objects, logging failures only.
func removeStored(ctx context.Context, store DocumentStore, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := store.Remove(ctx, key); err != nil {
			slog.WarnContext(ctx, "failed to remove stored document", "key", key, "error", err)
		}
	}
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date (YYYY-MM-DD)", ErrValidation, field)
	}
	return t, nil
}

func parseOptionalDate(value, field string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(value, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalString(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
