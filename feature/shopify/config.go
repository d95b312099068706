package shopify

// Config holds configuration for the commerce platform API.
type Config struct {
	// Domain is the store's admin domain, e.g. "example.myshopify.com".
	Domain string `mapstructure:"domain" default:""`

	// APIKey and APIPassword are the admin API basic credentials.
	APIKey      string `mapstructure:"api_key" default:""`
	APIPassword string `mapstructure:"api_password" default:""`

	// APIVersion selects the admin REST API version.
	APIVersion string `mapstructure:"api_version" default:"2024-01"`

	// PageSize is the catalog page limit, capped at the platform's 250.
	PageSize int `mapstructure:"page_size" default:"250"`

	// LevelBatchSize is how many inventory item ids go into one level
	// lookup, capped at the platform's 50.
	LevelBatchSize int `mapstructure:"level_batch_size" default:"50"`

	// TimeoutSeconds bounds a single API request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`

	// BaseURL overrides the https://<domain> admin base. Mainly for tests.
	BaseURL string `mapstructure:"base_url" default:""`
}
