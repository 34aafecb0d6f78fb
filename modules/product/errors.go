package product

import "errors"

var (
	ErrNotFound      = errors.New("product not found")
	ErrCreateProduct = errors.New("failed to create product")
	ErrListProducts  = errors.New("failed to list products")
	ErrGetProduct    = errors.New("failed to get product")
)
