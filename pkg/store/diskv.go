package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/planner/pkg/task"
	"tableflip.dev/planner/pkg/timeutil"
)

// Keys of the values held by the store.
const (
	KeyTasks                = "tasks"
	KeyNotificationsEnabled = "notificationsEnabled"
	KeyNotificationLeadTime = "notificationLeadTime"
)

var (
	ErrNotFound = errors.New("store: key not found")
	ErrCorrupt  = errors.New("store: stored value is corrupt")
	ErrLocked   = errors.New("store: another planner process is writing")
)

const lockTimeout = 2 * time.Second

// Persistence defines the persistence contract for the planner.
type Persistence interface {
	Load(ctx context.Context) ([]task.Task, error)
	SaveAll(ctx context.Context, tasks []task.Task) error
	NotificationsEnabled() (bool, error)
	SetNotificationsEnabled(ctx context.Context, on bool) error
	NotificationLeadTime() (time.Duration, error)
	SetNotificationLeadTime(ctx context.Context, d time.Duration) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := filepath.Clean(cfg.BasePath())
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, lock: flock.New(basePath + ".lock")}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	lock     *flock.Flock
}

// read bypasses the diskv cache; other processes write the same files.
func (p *persistence) read(key string) ([]byte, error) {
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *persistence) write(ctx context.Context, key string, val []byte) error {
	if err := os.MkdirAll(filepath.Dir(p.basePath), 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	locked, err := p.lock.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil || !locked {
		if err == nil || errors.Is(err, context.DeadlineExceeded) {
			return ErrLocked
		}
		return fmt.Errorf("store: lock: %w", err)
	}
	defer func() {
		if err := p.lock.Unlock(); err != nil {
			fmt.Fprintf(os.Stderr, "store: unlock: %v\n", err)
		}
	}()
	if err := p.d.Write(key, val); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Load reads the task collection. A missing key yields ErrNotFound and an
// undecodable value yields ErrCorrupt.
func (p *persistence) Load(ctx context.Context) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	val, err := p.read(KeyTasks)
	if err != nil {
		return nil, err
	}
	var tasks []task.Task
	if err := json.Unmarshal(val, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return tasks, nil
}

// SaveAll overwrites the task collection.
func (p *persistence) SaveAll(ctx context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("store: encode tasks: %w", err)
	}
	return p.write(ctx, KeyTasks, b)
}

func (p *persistence) NotificationsEnabled() (bool, error) {
	val, err := p.read(KeyNotificationsEnabled)
	if err != nil {
		return false, err
	}
	on, err := strconv.ParseBool(string(val))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return on, nil
}

func (p *persistence) SetNotificationsEnabled(ctx context.Context, on bool) error {
	return p.write(ctx, KeyNotificationsEnabled, []byte(strconv.FormatBool(on)))
}

// NotificationLeadTime is stored as a millisecond count.
func (p *persistence) NotificationLeadTime() (time.Duration, error) {
	val, err := p.read(KeyNotificationLeadTime)
	if err != nil {
		return 0, err
	}
	d, err := timeutil.ParseMillis(string(val))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return d, nil
}

func (p *persistence) SetNotificationLeadTime(ctx context.Context, d time.Duration) error {
	return p.write(ctx, KeyNotificationLeadTime, []byte(timeutil.FormatMillis(d)))
}

// Keys are stored flat, one file per key, directly under the base path.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
