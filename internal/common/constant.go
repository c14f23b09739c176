// Package common contains shared constants and sentinel errors used across
// finkeeper components.
package common

// AuthorizationHeaderName is the HTTP header carrying the session token on
// outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// DateTimeLayout is the wire format for timestamps exchanged with the server.
const DateTimeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// DisplayDateLayout is used when showing timestamps to the user.
const DisplayDateLayout = "2006-01-02 15:04"
