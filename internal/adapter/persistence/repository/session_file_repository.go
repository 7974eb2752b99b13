package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"monitoring_tunggakan/internal/usecase/interfaces"

	"github.com/pkg/errors"
)

// SessionFileRepository keeps sessions in a small JSON file (key -> token),
// so the terminal client stays logged in across runs.
type SessionFileRepository struct {
	mu   sync.Mutex
	path string
}

var _ interfaces.ISessionStore = (*SessionFileRepository)(nil)

func NewSessionFileRepository(path string) *SessionFileRepository {
	return &SessionFileRepository{path: path}
}

// DefaultSessionFile is ~/.config/tunggakan/session.json (or the OS equivalent).
func DefaultSessionFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve config dir")
	}
	return filepath.Join(dir, "tunggakan", "session.json"), nil
}

func (r *SessionFileRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.read()
	if err != nil {
		return "", err
	}
	return sessions[key], nil
}

func (r *SessionFileRepository) Set(_ context.Context, key, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.read()
	if err != nil {
		return err
	}
	sessions[key] = token
	return r.write(sessions)
}

func (r *SessionFileRepository) Clear(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := sessions[key]; !ok {
		return nil
	}
	delete(sessions, key)
	return r.write(sessions)
}

func (r *SessionFileRepository) read() (map[string]string, error) {
	sessions := map[string]string{}
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return sessions, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read session file")
	}
	if len(data) == 0 {
		return sessions, nil
	}
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, errors.Wrap(err, "decode session file")
	}
	return sessions, nil
}

// write replaces the file atomically; the token is a credential, so 0600.
func (r *SessionFileRepository) write(sessions map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return errors.Wrap(err, "create session dir")
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".session-*")
	if err != nil {
		return errors.Wrap(err, "create temp session file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write session file")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "chmod session file")
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return errors.Wrap(os.Rename(tmp.Name(), r.path), "replace session file")
}
