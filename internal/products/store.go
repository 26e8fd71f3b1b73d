package products

import "context"

// Store is an ordered sequence of products.
type Store interface {
	List() []Product
	Get(id string) (Product, bool)
	Append(p Product)
	// Update merges pl onto every product with the given id and returns the
	// whole resulting sequence. ok is false when nothing matched.
	Update(id string, pl Payload) (all []Product, ok bool)
	// Delete removes every product with the given id and reports how many
	// were removed.
	Delete(id string) int
	Replace(all []Product)
	Len() int
	Ping(ctx context.Context) error
}
