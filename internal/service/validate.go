package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Skotchmaster/inventory_cart/internal/models"
	"github.com/Skotchmaster/inventory_cart/internal/transport"
)

type validationMode int

const (
	modeCreate validationMode = iota
	modePatch
)

// validateProduct turns a payload into a patch. In modeCreate every
// required field must be present; in modePatch only present fields are
// checked, whatever their value.
func validateProduct(req transport.ProductPayload, mode validationMode) (models.ProductPatch, error) {
	var patch models.ProductPatch

	requiredText := []struct {
		name  string
		field transport.Field
		dst   **string
	}{
		{"title", req.Title, &patch.Title},
		{"description", req.Description, &patch.Description},
		{"code", req.Code, &patch.Code},
	}
	for _, f := range requiredText {
		if err := textField(f.name, f.field, f.dst, mode); err != nil {
			return models.ProductPatch{}, err
		}
	}

	if err := numberField("price", req.Price, &patch.Price, mode); err != nil {
		return models.ProductPatch{}, err
	}
	if err := numberField("stock", req.Stock, &patch.Stock, mode); err != nil {
		return models.ProductPatch{}, err
	}
	if err := textField("category", req.Category, &patch.Category, mode); err != nil {
		return models.ProductPatch{}, err
	}

	if req.Status.Set {
		var status bool
		if req.Status.IsNull() || json.Unmarshal(req.Status.Raw, &status) != nil {
			return models.ProductPatch{}, invalid("status", "must be a boolean")
		}
		patch.Status = &status
	}

	if req.Thumbnails.Set {
		thumbs, err := normalizeThumbnails(req.Thumbnails)
		if err != nil {
			return models.ProductPatch{}, err
		}
		patch.Thumbnails = &thumbs
	}

	return patch, nil
}

func textField(name string, f transport.Field, dst **string, mode validationMode) error {
	if !f.Set {
		if mode == modeCreate {
			return invalid(name, "is required")
		}
		return nil
	}
	var s string
	if f.IsNull() || json.Unmarshal(f.Raw, &s) != nil {
		return invalid(name, "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return invalid(name, "must not be empty")
	}
	*dst = &s
	return nil
}

// numberField accepts a JSON number or a numeric string.
func numberField(name string, f transport.Field, dst **float64, mode validationMode) error {
	if !f.Set {
		if mode == modeCreate {
			return invalid(name, "is required")
		}
		return nil
	}
	if f.IsNull() {
		return invalid(name, "must be a number")
	}

	var n float64
	if err := json.Unmarshal(f.Raw, &n); err != nil {
		var s string
		if json.Unmarshal(f.Raw, &s) != nil {
			return invalid(name, "must be a number")
		}
		parsed, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr != nil {
			return invalid(name, "must be a number")
		}
		n = parsed
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return invalid(name, "must be finite")
	}
	if n < 0 {
		return invalid(name, "must be >= 0")
	}
	*dst = &n
	return nil
}

// normalizeThumbnails accepts a list of strings or one comma separated
// string. Entries are trimmed and empty ones dropped.
func normalizeThumbnails(f transport.Field) ([]string, error) {
	out := []string{}

	var list []json.RawMessage
	if err := json.Unmarshal(f.Raw, &list); err == nil && !f.IsNull() {
		for _, item := range list {
			if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
				return nil, invalid("thumbnails", "must contain only strings")
			}
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return nil, invalid("thumbnails", "must contain only strings")
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}

	var joined string
	if f.IsNull() || json.Unmarshal(f.Raw, &joined) != nil {
		return nil, invalid("thumbnails", "must be a list of strings or a comma separated string")
	}
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}
