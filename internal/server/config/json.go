package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophbot/internal/flagx"
	"github.com/dmitrijs2005/gophbot/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. It is seeded from the current Config, so keys the
// file leaves out keep their earlier values.
type JsonConfig struct {
	HTTPAddr                    string         `json:"http_addr"`
	GRPCAddr                    string         `json:"grpc_addr"`
	Storage                     string         `json:"storage"`
	DatabaseDSN                 string         `json:"database_dsn"`
	TokenPolicy                 string         `json:"token_policy"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	AdminUsername               string         `json:"admin_username"`
	AdminPassword               string         `json:"admin_password"`
	RegisterRequiresAuth        bool           `json:"register_requires_auth"`
	LexiconPath                 string         `json:"lexicon_path"`
	SuggestionLimit             int            `json:"suggestion_limit"`
	SuggestionCutoff            float64        `json:"suggestion_cutoff"`
	CORSAllowedOrigin           string         `json:"cors_allowed_origin"`
	LogFormat                   string         `json:"log_format"`
	LogLevel                    string         `json:"log_level"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c/-config in args, if any, into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)

	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	config.HTTPAddr = c.HTTPAddr
	config.GRPCAddr = c.GRPCAddr
	config.Storage = c.Storage
	config.DatabaseDSN = c.DatabaseDSN
	config.TokenPolicy = c.TokenPolicy
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	config.BcryptCost = c.BcryptCost
	config.AdminUsername = c.AdminUsername
	config.AdminPassword = c.AdminPassword
	config.RegisterRequiresAuth = c.RegisterRequiresAuth
	config.LexiconPath = c.LexiconPath
	config.SuggestionLimit = c.SuggestionLimit
	config.SuggestionCutoff = c.SuggestionCutoff
	config.CORSAllowedOrigin = c.CORSAllowedOrigin
	config.LogFormat = c.LogFormat
	config.LogLevel = c.LogLevel
	config.ShutdownTimeout = c.ShutdownTimeout.Duration
	return nil
}

func toJson(c *Config) *JsonConfig {
	return &JsonConfig{
		HTTPAddr:                    c.HTTPAddr,
		GRPCAddr:                    c.GRPCAddr,
		Storage:                     c.Storage,
		DatabaseDSN:                 c.DatabaseDSN,
		TokenPolicy:                 c.TokenPolicy,
		SecretKey:                   c.SecretKey,
		AccessTokenValidityDuration: timex.Duration{Duration: c.AccessTokenValidityDuration},
		BcryptCost:                  c.BcryptCost,
		AdminUsername:               c.AdminUsername,
		AdminPassword:               c.AdminPassword,
		RegisterRequiresAuth:        c.RegisterRequiresAuth,
		LexiconPath:                 c.LexiconPath,
		SuggestionLimit:             c.SuggestionLimit,
		SuggestionCutoff:            c.SuggestionCutoff,
		CORSAllowedOrigin:           c.CORSAllowedOrigin,
		LogFormat:                   c.LogFormat,
		LogLevel:                    c.LogLevel,
		ShutdownTimeout:             timex.Duration{Duration: c.ShutdownTimeout},
	}
}
