package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/Skotchmaster/inventory_cart/pkg/logging"
)

// Document stores a single JSON object. Absent or unreadable content
// loads as the zero value of T, which is written back.
type Document[T any] struct {
	path string
	mu   sync.Mutex
}

func NewDocument[T any](path string) *Document[T] {
	return &Document[T]{path: path}
}

func (d *Document[T]) Path() string { return d.path }

func (d *Document[T]) Load(ctx context.Context) (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(ctx)
}

func (d *Document[T]) Save(ctx context.Context, v T) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.save(v)
}

// Update is the locked read-modify-write for the document. An error from
// fn aborts without writing.
func (d *Document[T]) Update(ctx context.Context, fn func(v T) (T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur, err := d.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	return d.save(next)
}

func (d *Document[T]) load(ctx context.Context) (T, error) {
	l := logging.FromContext(ctx).With("store", "document", "path", d.path)
	var zero T

	data, exists, err := readRaw(d.path)
	if err != nil {
		return zero, err
	}
	if !exists {
		l.Info("document_created")
		return zero, d.save(zero)
	}

	reason := ""
	var v T
	switch {
	case len(data) == 0:
		reason = "empty file"
	case !bytes.HasPrefix(data, []byte("{")):
		reason = "not an object"
	default:
		if err := json.Unmarshal(data, &v); err != nil {
			reason = err.Error()
		}
	}
	if reason != "" {
		l.Warn("document_reset", "reason", reason)
		return zero, d.save(zero)
	}
	return v, nil
}

func (d *Document[T]) save(v T) error {
	data, err := marshal(v)
	if err != nil {
		return storageErr("marshal", d.path, err)
	}
	return writeAtomic(d.path, data)
}
