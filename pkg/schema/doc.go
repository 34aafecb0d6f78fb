// Package schema declares structural request schemas and validates request
// data against them.
//
// Definitions are built with a small type-system API or loaded from raw JSON
// Schema documents:
//
//	body := schema.Object(schema.Props{
//		"name":  schema.String(schema.MinLength(1)),
//		"price": schema.Number(schema.Minimum(0)),
//		"tags":  schema.Optional(schema.Array(schema.String())),
//	})
//
//	params := schema.MustYAML([]byte(`
//	type: object
//	required: [id]
//	properties:
//	  id: {type: string, pattern: "^[0-9a-f]{24}$"}
//	`))
//
// A Schema groups up to four definitions, one per request slot (body, params,
// query, headers). Validator checks every present slot and reports all
// violations at once. Definitions are compiled to JSON Schema draft 2020-12 on
// first use and cached by pointer, so declare them once at package level or at
// route registration rather than per request.
//
// Validation never panics or returns an error: anything that goes wrong while
// compiling or checking is reported as a single issue of type "unknown_error".
package schema
