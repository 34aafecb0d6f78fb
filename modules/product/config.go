package product

// Config holds the product module settings.
type Config struct {
	Database   string `env:"PRODUCT_DATABASE" envDefault:"product"`
	Collection string `env:"PRODUCT_COLLECTION" envDefault:"product"`
	BaseURL    string `env:"PRODUCT_BASE_URL" envDefault:"http://localhost:3000"`
}
