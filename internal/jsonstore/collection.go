package jsonstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/Skotchmaster/inventory_cart/pkg/logging"
)

// Record is implemented by every value stored in a Collection.
type Record interface {
	RecordID() string
}

// Normalizer is implemented by records that repair themselves after decoding.
type Normalizer interface {
	Normalize()
}

type Collection[T Record] struct {
	path string

	mu sync.Mutex

	seqMu  sync.Mutex
	issued int64
}

func NewCollection[T Record](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

func (c *Collection[T]) Path() string { return c.path }

// Load returns the stored records in file order. Absent, empty, malformed
// or non-array content is reset to an empty array and reported only
// through the logger.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Save overwrites the file with records.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(records)
}

// Update runs a load, fn, save sequence while holding the file lock. When
// fn returns an error the file is left untouched and the error is returned.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return c.save(next)
}

// NextID returns one more than the highest numeric id among records and
// every id this Collection has issued before, so deleting the newest
// record never frees its id. Non-numeric ids are ignored.
func (c *Collection[T]) NextID(records []T) string {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()

	next := max(maxNumericID(records), c.issued) + 1
	c.issued = next
	return strconv.FormatInt(next, 10)
}

func maxNumericID[T Record](records []T) int64 {
	var highest int64
	for _, r := range records {
		n, err := strconv.ParseFloat(r.RecordID(), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			continue
		}
		if n >= math.MaxInt64 {
			continue
		}
		if v := int64(math.Floor(n)); v > highest {
			highest = v
		}
	}
	return highest
}

func (c *Collection[T]) observe(records []T) {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	c.issued = max(c.issued, maxNumericID(records))
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	l := logging.FromContext(ctx).With("store", "collection", "path", c.path)

	data, exists, err := readRaw(c.path)
	if err != nil {
		return nil, err
	}
	if !exists {
		l.Info("collection_created")
		return []T{}, c.save([]T{})
	}
	if len(data) == 0 {
		return c.reset(l, "empty file")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return c.reset(l, err.Error())
	}
	if raw == nil {
		// literal null
		return c.reset(l, "not an array")
	}

	records := make([]T, 0, len(raw))
	for i, item := range raw {
		var rec T
		if err := json.Unmarshal(item, &rec); err != nil {
			l.Warn("collection_record_skipped", "index", i, "error", err)
			continue
		}
		if n, ok := any(&rec).(Normalizer); ok {
			n.Normalize()
		}
		records = append(records, rec)
	}

	c.observe(records)
	return records, nil
}

func (c *Collection[T]) reset(l *slog.Logger, reason string) ([]T, error) {
	l.Warn("collection_reset", "reason", reason)
	if err := c.save([]T{}); err != nil {
		return nil, err
	}
	return []T{}, nil
}

func (c *Collection[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := marshal(records)
	if err != nil {
		return storageErr("marshal", c.path, err)
	}
	return writeAtomic(c.path, data)
}
