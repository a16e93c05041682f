package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

var (
	ErrInvalidProductID = errors.New("product id must be a positive integer")
	ErrDuplicateID      = errors.New("duplicate product id")
	ErrMissingName      = errors.New("product name is required")
)

// rawProduct is the fixture representation. Price stays raw so that both
// numeric and formatted-string forms pass through ParsePrice.
type rawProduct struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Color       string          `json:"color"`
	Material    string          `json:"material"`
	Price       json.RawMessage `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// Load reads a catalog fixture from disk
func Load(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a JSON array of products, normalizing every price. The whole
// catalog is rejected on the first malformed entry; a partially-loaded
// catalog is never returned.
func Decode(r io.Reader) ([]Product, error) {
	var raw []rawProduct
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	now := time.Now()
	seen := make(map[int64]struct{}, len(raw))
	products := make([]Product, 0, len(raw))
	for i, rp := range raw {
		if rp.ID <= 0 {
			return nil, fmt.Errorf("catalog entry %d: %w", i, ErrInvalidProductID)
		}
		if _, ok := seen[rp.ID]; ok {
			return nil, fmt.Errorf("catalog entry %d: %w: %d", i, ErrDuplicateID, rp.ID)
		}
		seen[rp.ID] = struct{}{}
		if rp.Name == "" {
			return nil, fmt.Errorf("catalog entry %d (id %d): %w", i, rp.ID, ErrMissingName)
		}

		price, err := ParsePrice(decodeRawPrice(rp.Price))
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (id %d): %w", i, rp.ID, err)
		}

		products = append(products, Product{
			ID:          rp.ID,
			Name:        rp.Name,
			Category:    rp.Category,
			Color:       rp.Color,
			Material:    rp.Material,
			Price:       price,
			Image:       rp.Image,
			Description: rp.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return products, nil
}

// decodeRawPrice turns the raw JSON price into the value forms ParsePrice
// accepts: json.Number for numeric literals, string for quoted ones.
func decodeRawPrice(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw)
		}
		return s
	}
	return json.Number(string(raw))
}
