// Package common contains shared constants and sentinel errors used across
// gophbot components.
package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key carrying
// the bearer token.
const AuthorizationHeaderName = "authorization"

// BearerPrefix is the scheme prefix expected in front of every access token.
const BearerPrefix = "Bearer "

// HistoryTimeLayout is the wire format of history timestamps.
const HistoryTimeLayout = "2006-01-02 15:04:05"
