// Package common contains shared constants and sentinel errors used across
// Course Copilot client components.
package common

// AuthorizationHeader carries the bearer token on outbound requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix is prepended to the access token in the authorization header.
const BearerPrefix = "Bearer "
