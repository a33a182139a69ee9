package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophbot/internal/flagx"
)

// serverFlags are the flags parseFlags owns.
var serverFlags = []string{
	"-a", "-g", "-st", "-d", "-tp", "-s", "-t", "-bc", "-au", "-ap", "-ra",
	"-l", "-sl", "-sc", "-o", "-lf", "-ll",
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-g string   gRPC bind address (e.g., ":50051")
//	-st string  storage backend: postgres, sqlite or memory
//	-d string   database DSN
//	-tp string  token policy: credential, static or jwt
//	-s string   secret key (static token / JWT HMAC key)
//	-t int      access token validity, minutes (jwt policy)
//	-bc int     bcrypt cost
//	-au string  admin username
//	-ap string  admin password
//	-ra bool    registration requires a token (use -ra=false to open it)
//	-l string   lexicon YAML file
//	-sl int     maximum number of suggestions
//	-sc float   suggestion similarity cutoff
//	-o string   CORS allowed origin
//	-lf string  log format: json, text or zap
//	-ll string  log level: debug, info, warn or error
//
// args are first filtered with flagx.FilterArgs, so flags owned by other
// components (-c) do not collide. A stray positional value, such as the
// "false" in "-ra false", is an error: flag would otherwise stop there and
// silently skip every later flag.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("gophbot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port to run server")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port to run server")
	fs.StringVar(&config.Storage, "st", config.Storage, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.TokenPolicy, "tp", config.TokenPolicy, "token policy")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.IntVar(&config.BcryptCost, "bc", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.AdminUsername, "au", config.AdminUsername, "admin username")
	fs.StringVar(&config.AdminPassword, "ap", config.AdminPassword, "admin password")
	fs.BoolVar(&config.RegisterRequiresAuth, "ra", config.RegisterRequiresAuth, "registration requires a token")
	fs.StringVar(&config.LexiconPath, "l", config.LexiconPath, "lexicon file")
	fs.IntVar(&config.SuggestionLimit, "sl", config.SuggestionLimit, "suggestion limit")
	fs.Float64Var(&config.SuggestionCutoff, "sc", config.SuggestionCutoff, "suggestion cutoff")
	fs.StringVar(&config.CORSAllowedOrigin, "o", config.CORSAllowedOrigin, "CORS allowed origin")
	fs.StringVar(&config.LogFormat, "lf", config.LogFormat, "log format")
	fs.StringVar(&config.LogLevel, "ll", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q: boolean flags take the -name=value form", fs.Arg(0))
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	return nil
}
