package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog/log"

	"tableflip.dev/planboard/pkg/increment"
	"tableflip.dev/planboard/pkg/task"
)

// Keys of the primary store.
const (
	KeyTasks      = "tasks"
	KeyIncrements = "increments"
	KeyScroll     = "scroll-position"
)

// ErrNotFound is returned when nothing has been stored under a key.
var ErrNotFound = errors.New("store: not found")

// Persistence is the board's key/value storage contract.
type Persistence interface {
	LoadTasks(ctx context.Context) ([]task.Task, error)
	SaveTasks(tasks []task.Task) error
	LoadIncrements(ctx context.Context) ([]increment.Increment, error)
	SaveIncrements(items []increment.Increment) error
	LoadScroll(ctx context.Context) (int, error)
	SaveScroll(offset int) error
	Reset(ctx context.Context) error
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

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{
		d:        newDiskv(basePath),
		basePath: basePath,
		legacy:   newLegacy(cfg),
	}, nil
}

func newDiskv(basePath string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No cache: other planboard processes write the same files.
	})
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	legacy   *legacy
}

// read always goes to disk so a reload sees writes from other processes.
func (p *persistence) read(key string) ([]byte, error) {
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *persistence) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// LoadTasks reads the primary task document and falls back to the legacy
// mirror when it is missing, unreadable or fails validation.
func (p *persistence) LoadTasks(ctx context.Context) ([]task.Task, error) {
	tasks, err := p.loadPrimaryTasks()
	if err == nil {
		return tasks, nil
	}
	if !errors.Is(err, ErrNotFound) {
		log.Warn().Err(err).Msg("primary task store unavailable, trying legacy")
	}
	legacyTasks, lerr := p.legacy.Load(ctx)
	if lerr != nil {
		if errors.Is(lerr, ErrNotFound) {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return nil, fmt.Errorf("%v; legacy: %w", err, lerr)
	}
	return legacyTasks, nil
}

func (p *persistence) loadPrimaryTasks() ([]task.Task, error) {
	data, err := p.read(KeyTasks)
	if err != nil {
		return nil, err
	}
	if err := validate(tasksSchemaURL, data); err != nil {
		return nil, err
	}
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", KeyTasks, err)
	}
	return tasks, nil
}

// SaveTasks writes the primary document and mirrors it to the legacy store.
// A primary failure is returned after the mirror was attempted.
func (p *persistence) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	perr := p.write(KeyTasks, tasks)
	if lerr := p.legacy.Save(tasks); lerr != nil {
		log.Warn().Err(lerr).Msg("legacy task mirror not written")
	}
	return perr
}

func (p *persistence) LoadIncrements(_ context.Context) ([]increment.Increment, error) {
	data, err := p.read(KeyIncrements)
	if err != nil {
		return nil, err
	}
	if err := validate(incrementsSchemaURL, data); err != nil {
		return nil, err
	}
	var items []increment.Increment
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", KeyIncrements, err)
	}
	return items, nil
}

func (p *persistence) SaveIncrements(items []increment.Increment) error {
	if items == nil {
		items = []increment.Increment{}
	}
	return p.write(KeyIncrements, items)
}

func (p *persistence) LoadScroll(_ context.Context) (int, error) {
	data, err := p.read(KeyScroll)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("store: decode %s: %w", KeyScroll, err)
	}
	return n, nil
}

func (p *persistence) SaveScroll(offset int) error {
	if err := p.d.Write(KeyScroll, []byte(strconv.Itoa(offset))); err != nil {
		return fmt.Errorf("store: write %s: %w", KeyScroll, err)
	}
	return nil
}

// Reset erases every key, the legacy mirror included.
func (p *persistence) Reset(_ context.Context) error {
	var errs []error
	for _, key := range []string{KeyTasks, KeyIncrements, KeyScroll} {
		if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("store: erase %s: %w", key, err))
		}
	}
	if err := p.legacy.Erase(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("store: ensure %s: %w", path, err)
	}
	return nil
}
