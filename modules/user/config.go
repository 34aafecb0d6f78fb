package user

// Config holds the user module settings.
type Config struct {
	Database   string `env:"USER_DATABASE" envDefault:"user"`
	Collection string `env:"USER_COLLECTION" envDefault:"users"`
	// UpstreamURL is the user service endpoint; :id is replaced with the requested id.
	UpstreamURL string `env:"USER_UPSTREAM_URL" envDefault:"http://localhost:3001/users/:id"`
}
