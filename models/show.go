package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Show models one TV show in the catalog.
type Show struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	CoverImageURL string    `json:"cover_image_url"`
	Genre         string    `json:"genre"`
	IsEnded       bool      `json:"-"`
	CreatedAt     time.Time `json:"-"`
}

// ShowInput carries the writable fields of a show for create and update requests.
type ShowInput struct {
	Title         string  `json:"title"`
	CoverImageURL string  `json:"cover_image_url"`
	Genre         string  `json:"genre"`
	IsEnded       BoolInt `json:"is_ended"`
}

// MarshalJSON keeps the legacy wire shape: is_ended as 0/1 and
// created_at as an ISO-8601 string.
func (s Show) MarshalJSON() ([]byte, error) {
	type ShowAlias Show // prevent recursion
	return json.Marshal(&struct {
		ShowAlias
		IsEnded   BoolInt `json:"is_ended"`
		CreatedAt string  `json:"created_at"`
	}{
		ShowAlias: ShowAlias(s),
		IsEnded:   BoolInt(s.IsEnded),
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// BoolInt is a boolean that marshals to 0/1 on the wire but accepts
// true/false, 0/1 and "0"/"1" when decoding, since clients send both forms.
type BoolInt bool

// MarshalJSON implements json.Marshaler.
func (b BoolInt) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *BoolInt) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "null":
		*b = false
		return nil
	case "true":
		*b = true
		return nil
	case "false":
		*b = false
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "1", "true":
			*b = true
			return nil
		case "0", "false", "":
			*b = false
			return nil
		}
		return fmt.Errorf("invalid boolean value %q", s)
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*b = n.String() != "0"
	return nil
}
