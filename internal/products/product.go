package products

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Payload is a create or update body. Nil fields were absent from the JSON.
// Any "id" sent by the client is dropped: ids are assigned by the server.
type Payload struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// Apply overwrites the fields present in the payload and keeps the rest.
func (pl Payload) Apply(p Product) Product {
	if pl.Name != nil {
		p.Name = *pl.Name
	}
	if pl.Description != nil {
		p.Description = *pl.Description
	}
	if pl.Price != nil {
		p.Price = *pl.Price
	}
	return p
}

func SeedProducts() []Product {
	return []Product{
		{ID: "1", Name: "Product One", Description: "This is product one", Price: 30},
		{ID: "2", Name: "Product Two", Description: "This is product two", Price: 40},
		{ID: "3", Name: "Product Three", Description: "This is product three", Price: 50},
	}
}
