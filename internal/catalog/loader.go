package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/karuta-api/internal/domain"
)

// ErrCatalogUnavailable is returned when the catalog file cannot be opened.
var ErrCatalogUnavailable = errors.New("card catalog unavailable")

// ErrMalformed is returned when the catalog content cannot be decoded or a
// record fails validation.
var ErrMalformed = errors.New("card catalog is malformed")

// cardID accepts both JSON strings and numbers.
type cardID string

func (id *cardID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = cardID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("numeric id must be an integer: %s", n)
	}
	*id = cardID(n.String())
	return nil
}

// record is one entry of the catalog file.
type record struct {
	ID             cardID `json:"id" validate:"required"`
	DecisiveString string `json:"decisive_string"`
	Kimariji       string `json:"kimariji" validate:"required_without=DecisiveString"`
	Shimo          string `json:"shimo"`
	Type           int    `json:"type" validate:"required,gte=1"`
}

func (r record) decisive() string {
	if r.DecisiveString != "" {
		return r.DecisiveString
	}
	return r.Kimariji
}

// Load reads a catalog file from disk.
func Load(path string) (*domain.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %q does not exist", ErrCatalogUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	catalog, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return catalog, nil
}

// Decode parses and validates a catalog from a JSON array of records.
func Decode(r io.Reader) (*domain.Catalog, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no cards", ErrMalformed)
	}

	validate := validator.New()
	cards := make([]*domain.Card, 0, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformed, i, err)
		}
		card, err := domain.NewCard(string(rec.ID), rec.decisive(), rec.Shimo, rec.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformed, i, err)
		}
		cards = append(cards, card)
	}

	catalog, err := domain.NewCatalog(cards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return catalog, nil
}
