package feed

// Config holds configuration for the vendor inventory feed.
type Config struct {
	// URL is the feed endpoint.
	URL string `mapstructure:"url" default:"https://honeysplace.com/API/inventory/index.php"`

	// Username and Password are the HTTP Basic credentials.
	Username string `mapstructure:"username" default:""`
	Password string `mapstructure:"password" default:""`

	// Token is a pre-shared URL token, appended as a query parameter.
	// Used instead of basic credentials when those are absent.
	Token string `mapstructure:"token" default:""`

	// TimeoutSeconds bounds the feed download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`

	// SKUPrefix keeps only SKUs carrying the vendor's tag.
	// Empty keeps every SKU.
	SKUPrefix string `mapstructure:"sku_prefix" default:"HP-"`
}
