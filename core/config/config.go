package config

import (
	"fmt"
	"reflect"
	"strings"

	"inventory-sync/core/logger"
	"inventory-sync/core/notify"
	"inventory-sync/core/reconcile"
	"inventory-sync/feature/feed"
	"inventory-sync/feature/shopify"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Feed holds configuration for the vendor inventory feed.
	Feed feed.Config `mapstructure:"feed"`
	// Shopify holds configuration for the commerce platform API.
	Shopify shopify.Config `mapstructure:"shopify"`
	// Sync holds configuration for the update dispatch engine.
	Sync reconcile.Config `mapstructure:"sync"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Notify holds configuration for the email notification collaborator.
	Notify notify.Config `mapstructure:"notify"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. FEED_USERNAME -> feed.username)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that every required value is present. The returned error
// names the missing environment variables so an operator can fix the
// deployment without reading source.
func (c *Config) Validate() error {
	var missing []string

	// Feed auth: basic credentials or a pre-shared URL token.
	if c.Feed.Token == "" {
		if c.Feed.Username == "" {
			missing = append(missing, "FEED_USERNAME")
		}
		if c.Feed.Password == "" {
			missing = append(missing, "FEED_PASSWORD")
		}
	}

	if c.Shopify.Domain == "" {
		missing = append(missing, "SHOPIFY_DOMAIN")
	}
	if c.Shopify.APIKey == "" {
		missing = append(missing, "SHOPIFY_API_KEY")
	}
	if c.Shopify.APIPassword == "" {
		missing = append(missing, "SHOPIFY_API_PASSWORD")
	}

	if c.Notify.Enabled {
		if c.Notify.Host == "" {
			missing = append(missing, "NOTIFY_HOST")
		}
		if c.Notify.From == "" {
			missing = append(missing, "NOTIFY_FROM")
		}
		if c.Notify.To == "" {
			missing = append(missing, "NOTIFY_TO")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
