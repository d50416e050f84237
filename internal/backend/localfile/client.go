// Package localfile implements storage.Storage as a single JSON object file.
package localfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	// LockTimeout bounds how long a write waits for another process's lock.
	LockTimeout = 5 * time.Second

	lockRetryDelay = 25 * time.Millisecond
	lockSuffix     = ".lock"
	tmpSuffix      = ".tmp"

	// CorruptSuffix is appended to the data file path when an unreadable
	// file is moved aside.
	CorruptSuffix = ".corrupt"
)

// Client stores every key as a string field of one JSON object on disk.
// Writes replace the file through a temp file and rename, so readers never
// see a partial document.
type Client struct {
	fs   afero.Fs
	path string
	lock *flock.Flock // nil when the filesystem is not the OS filesystem
}

// New creates a client over an arbitrary filesystem without cross-process locking.
func New(fsys afero.Fs, path string) *Client {
	return &Client{fs: fsys, path: path}
}

// Open creates a client on the OS filesystem, creating the parent directory
// if needed. Writes are serialized across processes with a lock file next to path.
func Open(path string) (*Client, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	c := New(osFs, path)
	c.lock = flock.New(path + lockSuffix)
	return c, nil
}

// Path returns the data file path.
func (c *Client) Path() string {
	return c.path
}

// GetItem implements storage.Storage.
func (c *Client) GetItem(ctx context.Context, key string) (string, bool, error) {
	items, err := c.read(ctx)
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

// SetItem implements storage.Storage.
func (c *Client) SetItem(ctx context.Context, key, value string) error {
	return c.update(ctx, func(items map[string]string) {
		items[key] = value
	})
}

// RemoveItem implements storage.Storage.
func (c *Client) RemoveItem(ctx context.Context, key string) error {
	return c.update(ctx, func(items map[string]string) {
		delete(items, key)
	})
}

// Close implements storage.Storage.
func (c *Client) Close() error {
	if c.lock == nil {
		return nil
	}
	return c.lock.Close()
}

// read returns the stored items. A file that is not a JSON object of strings
// is renamed to path+CorruptSuffix and reads as empty, so the next write
// starts a fresh file.
func (c *Client) read(ctx context.Context) (map[string]string, error) {
	data, err := afero.ReadFile(c.fs, c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	items := make(map[string]string)
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		aside := c.path + CorruptSuffix
		if rerr := c.fs.Rename(c.path, aside); rerr != nil {
			return nil, fmt.Errorf("parse data file %s: %w (move aside: %v)", c.path, err, rerr)
		}
		log.FromContext(ctx).Warn("data file is unreadable, starting empty", "path", c.path, "moved_to", aside, "err", err)
		return make(map[string]string), nil
	}
	return items, nil
}

func (c *Client) update(ctx context.Context, fn func(map[string]string)) error {
	unlock, err := c.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	items, err := c.read(ctx)
	if err != nil {
		return err
	}
	fn(items)

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data file: %w", err)
	}
	data = append(data, '\n')

	tmp := c.path + tmpSuffix
	if err := afero.WriteFile(c.fs, tmp, data, 0600); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := c.fs.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

func (c *Client) acquire(ctx context.Context) (func(), error) {
	if c.lock == nil {
		return func() {}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()

	locked, err := c.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("lock data file: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("lock data file: %s is busy", c.path)
	}
	return func() { _ = c.lock.Unlock() }, nil
}
