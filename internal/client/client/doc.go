// Package client is the Sync Client: it talks to the finkeeper API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services layer.
// HTTPClient implements it with JSON over HTTP(S). Every operation is a
// single request/response exchange with no retries.
//
// # Error Handling
//
// Outcomes are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable (transport failure), ErrUnauthorized (401),
// ErrUnexpectedStatus (any other status) and ErrSyncFailed, which every
// SyncExpenses failure matches regardless of its cause.
//
// # Sessions
//
// A token returned by Authenticate is kept in memory only and attached as a
// Bearer header to later requests. It is lost on restart.
package client
