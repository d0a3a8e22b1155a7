package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps all keys in a single JSON object on disk, rewritten on
// every change (the local-storage equivalent of a single-user tracker).
type FileStore struct {
	path   string
	values map[string]string
	mutex  sync.RWMutex
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path: %w", ErrEmptyKey)
	}

	if err := pkg.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create file store dir: %w", err)
	}

	fs := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Debugf("file store %s does not exist yet, starting empty", path)
	case err != nil:
		return nil, fmt.Errorf("read file store: %w", err)
	case len(data) > 0:
		if err := json.Unmarshal(data, &fs.values); err != nil {
			// unreadable data is treated as no data
			log.Errorf("file store %s is malformed, starting empty: %s", path, err)
			fs.values = make(map[string]string)
		}
	}

	return fs, nil
}

func (fs *FileStore) Get(ctx context.Context, key string) (string, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.file.get")
	span.SetAttributes(attribute.String("key", key))
	defer span.End()

	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	val, ok := fs.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (fs *FileStore) Set(ctx context.Context, key, value string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.file.set")
	span.SetAttributes(attribute.String("key", key))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if key == "" {
		return ErrEmptyKey
	}

	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	prev, existed := fs.values[key]
	fs.values[key] = value
	if err := fs.flush(); err != nil {
		if existed {
			fs.values[key] = prev
		} else {
			delete(fs.values, key)
		}
		return err
	}
	return nil
}

func (fs *FileStore) Delete(ctx context.Context, key string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.file.delete")
	span.SetAttributes(attribute.String("key", key))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if _, ok := fs.values[key]; !ok {
		return nil
	}
	delete(fs.values, key)
	return fs.flush()
}

func (fs *FileStore) Close() error {
	return nil
}

// flush writes through a temp file + rename. Caller holds the write lock.
func (fs *FileStore) flush() error {
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal file store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fs.path), filepath.Base(fs.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp store file: %w", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename store file: %w", err)
	}
	return nil
}
