package item

import "errors"

var (
	ErrMissingFields = errors.New("name and price are required")
	ErrNoChanges     = errors.New("name or price is required")
)

// Item is a single named, priced record.
type Item struct {
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

// CreateInput is the decoded body of a create request.
// Absent fields stay nil so validation can tell them apart from zero values.
type CreateInput struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// Validate rejects inputs missing a non-empty name or a non-zero price.
func (in CreateInput) Validate() error {
	if !hasName(in.Name) || !hasPrice(in.Price) {
		return ErrMissingFields
	}
	return nil
}

// Item builds the record described by a validated input.
func (in CreateInput) Item() Item {
	return Item{Name: *in.Name, Price: *in.Price}
}

// UpdateInput is the decoded body of a partial update request.
type UpdateInput struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// Validate requires at least one usable field.
func (in UpdateInput) Validate() error {
	if !hasName(in.Name) && !hasPrice(in.Price) {
		return ErrNoChanges
	}
	return nil
}

// NewName returns the replacement name, if one was supplied.
func (in UpdateInput) NewName() (string, bool) {
	if !hasName(in.Name) {
		return "", false
	}
	return *in.Name, true
}

// Apply overwrites the supplied fields of it and leaves the others untouched.
func (in UpdateInput) Apply(it Item) Item {
	if hasName(in.Name) {
		it.Name = *in.Name
	}
	if hasPrice(in.Price) {
		it.Price = *in.Price
	}
	return it
}

func hasName(name *string) bool {
	return name != nil && *name != ""
}

func hasPrice(price *float64) bool {
	return price != nil && *price != 0
}

// IndexOf returns the position of the item called name, or -1.
func IndexOf(items []Item, name string) int {
	for i, it := range items {
		if it.Name == name {
			return i
		}
	}
	return -1
}
