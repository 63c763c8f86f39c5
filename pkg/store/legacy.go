package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog/log"

	"tableflip.dev/planboard/pkg/task"
)

const legacyKey = "ganttTasks"

// ErrTooLarge is returned when a legacy write exceeds the size limit.
var ErrTooLarge = errors.New("store: legacy document too large")

// legacyEnvelope is the on-disk shape of the legacy mirror.
type legacyEnvelope struct {
	Expires time.Time   `json:"expires"`
	Tasks   []task.Task `json:"tasks"`
}

// legacy is a small, expiring mirror of the task collection consulted when
// the primary store cannot be read.
type legacy struct {
	d        *diskv.Diskv
	expiry   time.Duration
	maxBytes int
	now      func() time.Time
}

func newLegacy(cfg Config) *legacy {
	return &legacy{
		d: diskv.New(diskv.Options{
			BasePath:          cfg.LegacyPath(),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
		}),
		expiry:   cfg.LegacyExpiry(),
		maxBytes: cfg.LegacyMaxBytes(),
		now:      time.Now,
	}
}

// Load returns the mirrored tasks. Expired mirrors are erased and read as
// ErrNotFound.
func (l *legacy) Load(_ context.Context) ([]task.Task, error) {
	data, err := l.d.Read(legacyKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read legacy: %w", err)
	}
	var env legacyEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("store: decode legacy: %w", err)
	}
	if !env.Expires.IsZero() && !l.now().Before(env.Expires) {
		if err := l.Erase(); err != nil {
			log.Debug().Err(err).Msg("expired legacy mirror not erased")
		}
		return nil, ErrNotFound
	}
	return env.Tasks, nil
}

// Save mirrors tasks with a fresh expiry. Documents over the size limit are
// skipped and reported as ErrTooLarge.
func (l *legacy) Save(tasks []task.Task) error {
	data, err := json.Marshal(legacyEnvelope{
		Expires: l.now().Add(l.expiry).UTC(),
		Tasks:   tasks,
	})
	if err != nil {
		return fmt.Errorf("store: encode legacy: %w", err)
	}
	if l.maxBytes > 0 && len(data) > l.maxBytes {
		return fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(data), l.maxBytes)
	}
	if err := l.d.Write(legacyKey, data); err != nil {
		return fmt.Errorf("store: write legacy: %w", err)
	}
	return nil
}

// Erase removes the mirror. A missing mirror is not an error.
func (l *legacy) Erase() error {
	if err := l.d.Erase(legacyKey); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase legacy: %w", err)
	}
	return nil
}
