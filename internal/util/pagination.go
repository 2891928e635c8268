package util

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page > math.MaxInt/size {
		page = math.MaxInt / size
	}
	return (page - 1) * size, size
}

// Page returns the window [offset, offset+limit) of items, clipped to its
// bounds. The result is never nil.
func Page[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) || limit < 1 {
		return []T{}
	}
	end := len(items)
	if limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}
