package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRecordCorrupt is returned when a persisted session record cannot be decoded.
var ErrRecordCorrupt = errors.New("session record corrupt")

// Repository is the durable storage for the single session record. Load is called
// once at startup; Save runs on every session mutation; Wipe erases the record
// entirely and is reserved for the recovery path.
type Repository interface {
	Load(ctx context.Context) (Record, bool, error)
	Save(ctx context.Context, rec Record) error
	Wipe(ctx context.Context) error
}

// FileRepository persists the session record as a JSON file. Writes go through a
// temp file followed by rename so a crash never leaves a half-written record.
type FileRepository struct {
	path string
}

// NewFileRepository describes the newfilerepository operation and its observable behavior.
//
// NewFileRepository may return an error when input validation, dependency calls, or security checks fail.
// NewFileRepository does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		return nil, errors.New("session file path required")
	}
	return &FileRepository{path: path}, nil
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *FileRepository) Load(_ context.Context) (Record, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("read session record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, errors.Join(ErrRecordCorrupt, err)
	}

	return rec, true, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *FileRepository) Save(_ context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create session temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write session record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close session temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod session record: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace session record: %w", err)
	}

	return nil
}

// Wipe describes the wipe operation and its observable behavior.
//
// Wipe may return an error when input validation, dependency calls, or security checks fail.
// Wipe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *FileRepository) Wipe(_ context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("wipe session record: %w", err)
	}
	return nil
}
