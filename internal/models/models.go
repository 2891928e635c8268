package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ID is a record identifier stored as a JSON string. Files written by
// older versions may carry numeric ids; those decode to their string form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type Product struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Price       float64  `json:"price"`
	Status      bool     `json:"status"`
	Stock       float64  `json:"stock"`
	Category    string   `json:"category"`
	Thumbnails  []string `json:"thumbnails"`
}

func (p Product) RecordID() string { return string(p.ID) }

// UnmarshalJSON accepts price and stock written as numeric strings by older
// versions. Values that are neither decode to 0 instead of dropping the
// product.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var aux struct {
		plain
		Price json.RawMessage `json:"price"`
		Stock json.RawMessage `json:"stock"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Product(aux.plain)
	p.Price = looseNumber(aux.Price)
	p.Stock = looseNumber(aux.Stock)
	return nil
}

func looseNumber(raw json.RawMessage) float64 {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func (p *Product) Normalize() {
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}
}

type CartLine struct {
	Product  ID  `json:"product"`
	Quantity int `json:"quantity"`
}

type Cart struct {
	ID       ID         `json:"id"`
	Products []CartLine `json:"products"`
}

func (c Cart) RecordID() string { return string(c.ID) }

// UnmarshalJSON keeps the cart when its products member is damaged: a
// non-array value becomes an empty list and undecodable lines are dropped.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID       ID              `json:"id"`
		Products json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.ID = aux.ID
	c.Products = []CartLine{}

	var lines []json.RawMessage
	if err := json.Unmarshal(aux.Products, &lines); err != nil {
		return nil
	}
	for _, raw := range lines {
		var line CartLine
		if err := json.Unmarshal(raw, &line); err != nil || line.Quantity < 1 {
			continue
		}
		c.Products = append(c.Products, line)
	}
	return nil
}

// Normalize drops lines whose quantity fell below one.
func (c *Cart) Normalize() {
	lines := make([]CartLine, 0, len(c.Products))
	for _, line := range c.Products {
		if line.Quantity >= 1 {
			lines = append(lines, line)
		}
	}
	c.Products = lines
}

// Session is the one live token pair. All fields are null before the
// first login and after a logout.
type Session struct {
	AccessToken  *string    `json:"accessToken"`
	RefreshToken *string    `json:"refreshToken"`
	IssuedAt     *time.Time `json:"issuedAt"`
}

func (s Session) Active() bool {
	return s.AccessToken != nil && s.RefreshToken != nil
}

// ProductPatch carries already validated values; nil fields are left as is.
type ProductPatch struct {
	Title       *string
	Description *string
	Code        *string
	Price       *float64
	Status      *bool
	Stock       *float64
	Category    *string
	Thumbnails  *[]string
}

func (p ProductPatch) Apply(prod *Product) {
	if p.Title != nil {
		prod.Title = *p.Title
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.Code != nil {
		prod.Code = *p.Code
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Status != nil {
		prod.Status = *p.Status
	}
	if p.Stock != nil {
		prod.Stock = *p.Stock
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
	if p.Thumbnails != nil {
		prod.Thumbnails = append([]string{}, (*p.Thumbnails)...)
	}
}
