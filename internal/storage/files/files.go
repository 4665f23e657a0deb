// Package files stores uploaded documents on local disk or in MinIO/S3.
package files

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"recruit-api/internal/models"

	"github.com/google/uuid"
)

// Store is a backend that keeps objects by key.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// URL returns a link the client can download key from.
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Upload is a file received from a client.
type Upload struct {
	FileName string
	Size     int64
	Content  io.Reader
}

// Manager validates uploads and places them under the owner's folder.
type Manager struct {
	store  Store
	policy Policy
}

// NewManager creates a new Manager.
func NewManager(store Store, policy Policy) *Manager {
	return &Manager{store: store, policy: policy}
}

// Put validates u and stores it as <owner>/<random>-<safe-name>.
func (m *Manager) Put(ctx context.Context, ownerID uuid.UUID, u Upload) (*models.Document, error) {
	contentType, body, err := m.policy.Check(u.FileName, u.Size, u.Content)
	if err != nil {
		return nil, err
	}

	key, err := ObjectKey(ownerID, u.FileName)
	if err != nil {
		return nil, err
	}
	url, err := m.store.Save(ctx, key, body, u.Size, contentType)
	if err != nil {
		return nil, err
	}
	if err := drained(body); err != nil {
		_ = m.store.Delete(ctx, key)
		return nil, fmt.Errorf("%w: content longer than the declared %d bytes", err, u.Size)
	}
	return &models.Document{
		URL:        url,
		FileName:   SafeFilename(u.FileName),
		StorageKey: key,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// URL returns a download link for key.
func (m *Manager) URL(ctx context.Context, key string) (string, error) {
	return m.store.URL(ctx, key)
}

// Remove deletes the stored object. Empty keys are ignored.
func (m *Manager) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return m.store.Delete(ctx, key)
}

// ObjectKey builds the storage key for a file owned by ownerID.
func ObjectKey(ownerID uuid.UUID, filename string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate object key: %w", err)
	}
	return fmt.Sprintf("%s/%s-%s", ownerID, hex.EncodeToString(buf), SafeFilename(filename)), nil
}

// SafeFilename strips directories and anything outside [A-Za-z0-9._-].
func SafeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "document"
	}
	return out
}
