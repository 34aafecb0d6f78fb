package user

import "github.com/dmitrymomot/servekit/pkg/schema"

// User is a locally stored user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Age   int    `json:"age,omitempty"`
}

// CreateInput is the body accepted by the create endpoint.
type CreateInput struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Age   int    `json:"age,omitempty"`
}

// CreateSchema validates CreateInput bodies.
var CreateSchema = schema.Object(schema.Props{
	"name":  schema.String(schema.MinLength(1)),
	"email": schema.Optional(schema.String(schema.Format("email"))),
	"age":   schema.Optional(schema.Integer(schema.Minimum(0))),
})
