package catalog

import (
	"fmt"
	"math"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/money"
)

// MaxRating is the top of the review scale.
const MaxRating = 5

// Product is a validated catalog entry.
type Product struct {
	ID          string
	Title       string
	PriceMinor  int64
	Stock       int
	Image       string
	Category    string
	Description string
	Rating      Rating
}

// Rating summarizes reviews for a product.
type Rating struct {
	Rate  decimal.Decimal
	Count int
}

// Ref hands the product to a cart.
func (p Product) Ref() cart.ProductRef {
	return cart.ProductRef{
		ID:        p.ID,
		Name:      p.Title,
		UnitPrice: p.PriceMinor,
		Stock:     p.Stock,
		ImageRef:  p.Image,
	}
}

// Rejection records why a record was left out of the catalog.
type Rejection struct {
	Index int
	ID    string
	Err   error
}

func (r Rejection) String() string {
	return fmt.Sprintf("record %d (id %q): %v", r.Index, r.ID, r.Err)
}

// Options tune ingestion.
type Options struct {
	// DefaultStock applies to records that carry no stock of their own.
	DefaultStock int
}

// Result is the outcome of Ingest.
type Result struct {
	Products []Product
	Rejected []Rejection
}

// Ingest validates records in order and keeps the ones that pass. Records
// without an id get a generated one; a repeated id keeps the first record.
func Ingest(records []Record, opts Options) Result {
	res := Result{Products: make([]Product, 0, len(records))}
	seen := make(map[string]struct{}, len(records))

	for i, rec := range records {
		p, err := validate(rec, opts)
		if err == nil {
			if _, dup := seen[p.ID]; dup {
				err = ErrDuplicateID
			}
		}
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Index: i, ID: string(rec.ID), Err: err})
			continue
		}

		seen[p.ID] = struct{}{}
		res.Products = append(res.Products, p)
	}

	return res
}

func validate(rec Record, opts Options) (Product, error) {
	if rec.Price == nil {
		return Product{}, &cart.ValidationError{Kind: cart.InvalidPrice, Field: "price", Reason: "is required"}
	}
	price, err := money.FromMajor(*rec.Price)
	if err != nil {
		return Product{}, &cart.ValidationError{Kind: cart.InvalidPrice, Field: "price", Reason: "is not a non-negative amount in cents", Err: err}
	}

	stock := opts.DefaultStock
	if rec.Stock != nil {
		stock, err = wholeNumber(*rec.Stock)
		if err != nil {
			return Product{}, &cart.ValidationError{Kind: cart.InvalidStock, Field: "stock", Reason: "must be a whole number", Err: err}
		}
	}
	if err := cart.ValidateStock(stock); err != nil {
		return Product{}, err
	}

	img, err := cart.ValidateImageRef(rec.Image)
	if err != nil {
		return Product{}, err
	}
	if err := cart.ValidateName(rec.Title); err != nil {
		return Product{}, err
	}

	var rating Rating
	if rec.Rating != nil {
		rating, err = validateRating(*rec.Rating)
		if err != nil {
			return Product{}, err
		}
	}

	id := string(rec.ID)
	if id == "" {
		id = uuid.NewString()
	}

	return Product{
		ID:          id,
		Title:       rec.Title,
		PriceMinor:  price,
		Stock:       stock,
		Image:       img.String(),
		Category:    rec.Category,
		Description: rec.Description,
		Rating:      rating,
	}, nil
}

func validateRating(r RecordRating) (Rating, error) {
	if err := money.CheckScale(r.Rate); err != nil {
		return Rating{}, errors.Wrap(ErrInvalidRate, err.Error())
	}
	if r.Rate.IsNegative() || r.Rate.GreaterThan(decimal.NewFromInt(MaxRating)) {
		return Rating{}, errors.Wrapf(ErrInvalidRate, "rate %s outside 0..%d", r.Rate, MaxRating)
	}
	count, err := wholeNumber(r.Count)
	if err != nil || count < 0 {
		return Rating{}, errors.Wrapf(ErrInvalidRate, "count %s", r.Count)
	}
	return Rating{Rate: r.Rate, Count: count}, nil
}

var errNotWhole = errors.New("not a whole number")

func wholeNumber(d decimal.Decimal) (int, error) {
	if err := money.CheckScale(d); err != nil {
		return 0, errors.Wrap(errNotWhole, err.Error())
	}
	if !d.IsInteger() {
		return 0, errNotWhole
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || d.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return 0, errors.Wrap(errNotWhole, "out of range")
	}
	return int(d.IntPart()), nil
}
