// Package common contains shared constants, sentinel errors and small helpers
// used across the WedLink admin console.
package common

// AuthorizationHeaderName carries the bearer access token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is prepended to the access token in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries a per-request identifier for log correlation.
const RequestIDHeaderName = "X-Request-ID"
