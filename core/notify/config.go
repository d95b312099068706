package notify

// Config holds configuration for the email notification collaborator.
type Config struct {
	// Enabled turns notification on. When false, Send is a no-op.
	Enabled bool `mapstructure:"enabled" default:"false"`

	// Host and Port locate the SMTP server.
	Host string `mapstructure:"host" default:""`
	Port int    `mapstructure:"port" default:"587"`

	// Username and Password authenticate against the SMTP server.
	// Empty username sends without authentication.
	Username string `mapstructure:"username" default:""`
	Password string `mapstructure:"password" default:""`

	// From is the sender address.
	From string `mapstructure:"from" default:""`

	// To is the recipient address list, comma separated.
	To string `mapstructure:"to" default:""`
}
