// Package cli implements the interactive finkeeper terminal client.
//
// App wires the local store, the API client and the services together and
// runs a read–eval–print loop over them. Commands that touch data require a
// login; login works offline against the locally stored credential when the
// server cannot be reached.
package cli
