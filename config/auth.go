package config

import "github.com/spf13/viper"

// DevJWTSecret is the fallback signing secret. It is only acceptable
// for local development; LoadConfig rejects it in release mode.
const DevJWTSecret = "your-secret-key-please-change-in-production"

// Auth auth config struct
type Auth struct {
	JWT *JWT
}

// getAuth returns the auth config.
func getAuth(v *viper.Viper) *Auth {
	return &Auth{
		JWT: getJWT(v),
	}
}

// JWT jwt config struct
type JWT struct {
	Secret string
	Expire int // hours
}

// getJWT returns the jwt config.
func getJWT(v *viper.Viper) *JWT {
	return &JWT{
		Secret: v.GetString("auth.jwt.secret"),
		Expire: v.GetInt("auth.jwt.expire"),
	}
}
