package transport

import (
	"bytes"
	"encoding/json"
)

// Field keeps a raw JSON member together with whether it was present, so
// an absent member and an explicit null are told apart.
type Field struct {
	Set bool
	Raw json.RawMessage
}

func (f *Field) UnmarshalJSON(data []byte) error {
	f.Set = true
	f.Raw = append(f.Raw[:0], data...)
	return nil
}

func (f Field) IsNull() bool {
	return f.Set && bytes.Equal(bytes.TrimSpace(f.Raw), []byte("null"))
}

// Value builds a present Field from any JSON-encodable value.
func Value(v any) Field {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return Field{Set: true, Raw: raw}
}

type ProductPayload struct {
	Title       Field `json:"title"`
	Description Field `json:"description"`
	Code        Field `json:"code"`
	Price       Field `json:"price"`
	Status      Field `json:"status"`
	Stock       Field `json:"stock"`
	Category    Field `json:"category"`
	Thumbnails  Field `json:"thumbnails"`
}

type StatusRequest struct {
	Status Field `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Envelope struct {
	Status  string `json:"status"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}
