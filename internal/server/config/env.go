package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment variables read by parseEnv, e.g.
// GOPHBOT_DATABASE_DSN.
const EnvPrefix = "GOPHBOT"

// parseEnv overlays every GOPHBOT_<JSON KEY> variable that is set.
func parseEnv(config *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)

	keys := []string{
		"http_addr", "grpc_addr", "storage", "database_dsn", "token_policy",
		"secret_key", "access_token_validity_duration", "bcrypt_cost",
		"admin_username", "admin_password", "register_requires_auth",
		"lexicon_path", "suggestion_limit", "suggestion_cutoff",
		"cors_allowed_origin", "log_format", "log_level", "shutdown_timeout",
	}
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return fmt.Errorf("config: bind env %s: %w", k, err)
		}
	}

	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	str("http_addr", &config.HTTPAddr)
	str("grpc_addr", &config.GRPCAddr)
	str("storage", &config.Storage)
	str("database_dsn", &config.DatabaseDSN)
	str("token_policy", &config.TokenPolicy)
	str("secret_key", &config.SecretKey)
	str("admin_username", &config.AdminUsername)
	str("admin_password", &config.AdminPassword)
	str("lexicon_path", &config.LexiconPath)
	str("cors_allowed_origin", &config.CORSAllowedOrigin)
	str("log_format", &config.LogFormat)
	str("log_level", &config.LogLevel)

	if v.IsSet("access_token_validity_duration") {
		config.AccessTokenValidityDuration = v.GetDuration("access_token_validity_duration")
	}
	if v.IsSet("shutdown_timeout") {
		config.ShutdownTimeout = v.GetDuration("shutdown_timeout")
	}
	if v.IsSet("bcrypt_cost") {
		config.BcryptCost = v.GetInt("bcrypt_cost")
	}
	if v.IsSet("suggestion_limit") {
		config.SuggestionLimit = v.GetInt("suggestion_limit")
	}
	if v.IsSet("suggestion_cutoff") {
		config.SuggestionCutoff = v.GetFloat64("suggestion_cutoff")
	}
	if v.IsSet("register_requires_auth") {
		config.RegisterRequiresAuth = v.GetBool("register_requires_auth")
	}
	return nil
}
