package product

import "github.com/dmitrymomot/servekit/pkg/schema"

// Product is the public representation of a stored product.
type Product struct {
	ID          string  `json:"id"`
	Href        string  `json:"href"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// CreateInput is the body accepted by the create endpoint.
type CreateInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// CreateSchema validates CreateInput bodies.
var CreateSchema = schema.Object(schema.Props{
	"name":        schema.String(),
	"price":       schema.Number(),
	"description": schema.String(),
})
