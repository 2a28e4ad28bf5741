package order

import "github.com/oklog/ulid/v2"

// NewNumero generates a human-facing order number.
//
// ULIDs keep the timestamp-sortable property of the historical
// date-plus-random scheme while being collision-free, and the database still
// carries a uniqueness constraint on the column as a backstop.
func NewNumero() string {
	return "CMD-" + ulid.Make().String()
}
