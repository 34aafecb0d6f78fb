// Package product exposes the product catalog under /products.
//
//	POST /products      create, body {name, price, description}, replies 201
//	GET  /products      list
//	GET  /products/:id  fetch one, 404 {"message":"Product not found"} when absent
//
// Products are stored through a Repository; MongoRepository is the MongoDB implementation.
package product
