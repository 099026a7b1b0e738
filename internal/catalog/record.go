// Package catalog turns raw product records from an external catalog into
// validated products. Bad records are dropped individually; one malformed
// entry never fails a whole load.
package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/money"
)

var (
	ErrInvalidID   = errors.New("id must be a string or an integer")
	ErrDuplicateID = errors.New("duplicate product id")
	ErrInvalidRate = errors.New("invalid rating")
)

// ID is a product identifier that may arrive as a JSON string or integer.
// It is kept in string form either way.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errors.Wrap(err, "decode id")
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	if i, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}

	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return ErrInvalidID
	}
	if err := money.CheckScale(d); err != nil {
		return errors.Wrap(ErrInvalidID, err.Error())
	}
	if !d.IsInteger() {
		return ErrInvalidID
	}
	*id = ID(d.String())
	return nil
}

// Record is one product as delivered by the catalog, before validation.
// Prices are decimal major units (dollars).
type Record struct {
	ID          ID               `json:"id"`
	Title       string           `json:"title"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *decimal.Decimal `json:"stock,omitempty"`
	Image       string           `json:"image"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Rating      *RecordRating    `json:"rating,omitempty"`
}

// RecordRating is the review summary attached to a record.
type RecordRating struct {
	Rate  decimal.Decimal `json:"rate"`
	Count decimal.Decimal `json:"count"`
}

// Decode parses a JSON array of records. Elements that do not decode are
// returned as rejections; only a body that is not an array fails outright.
func Decode(data []byte) ([]Record, []Rejection, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "decode catalog")
	}

	records := make([]Record, 0, len(raw))
	var rejected []Rejection
	for i, msg := range raw {
		var rec Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			rejected = append(rejected, Rejection{Index: i, Err: err})
			continue
		}
		records = append(records, rec)
	}

	return records, rejected, nil
}
