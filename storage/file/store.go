// Package filestore keeps each snapshot in its own JSON file under a directory,
// the way a browser keeps localStorage entries.
package filestore

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
)

var keyRegex = regexp.MustCompile(`^[\w.-]+$`)

type store struct {
	dir   string
	mutex sync.Mutex
}

// NewSnapshotStore creates dir when it does not exist.
func NewSnapshotStore(dir string) (core.SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating snapshot directory %s", dir)
	}
	return &store{dir: dir}, nil
}

func (s *store) path(key string) (string, error) {
	if !keyRegex.MatchString(key) {
		return "", errors.Errorf("invalid snapshot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *store) Get(_ context.Context, key string) ([]byte, error) {
	fp, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := ioutil.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrSnapshotNotFound
		}
		return nil, errors.Wrapf(err, "reading %s", fp)
	}
	return data, nil
}

// Set writes to a temporary file first so a crash never leaves a truncated snapshot.
func (s *store) Set(_ context.Context, key string, data []byte) error {
	fp, err := s.path(key)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	tmp, err := ioutil.TempFile(s.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temporary snapshot")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), fp); err != nil {
		return errors.Wrapf(err, "replacing %s", fp)
	}
	return nil
}

func (s *store) Delete(_ context.Context, key string) error {
	fp, err := s.path(key)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err = os.Remove(fp); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", fp)
	}
	return nil
}
