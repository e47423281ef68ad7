package config

import "github.com/spf13/viper"

// Frontend holds settings for the web client the API serves.
type Frontend struct {
	// URL is the base used to build password-reset links.
	URL string
}

// getFrontend returns the frontend config.
func getFrontend(v *viper.Viper) *Frontend {
	return &Frontend{
		URL: v.GetString("frontend.url"),
	}
}
