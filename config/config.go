package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	BearerToken  string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}

// SMTPConfigured reports whether outgoing mail can be sent.
func (c *AppConfig) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != ""
}
