// Package store is the Local Store: it owns the expense and credential
// collections of the client.
//
// # Overview
//
// Mutations (CreateExpense, CreateCredential, Delete, DeleteAll) only touch
// in-memory pending state. Save writes all of it in one SQLite transaction;
// when the commit fails nothing is lost and the caller may call Save again.
// Reads (Expenses, Credentials) return the current view: durable rows plus
// pending creates minus pending deletes.
//
// Read failures are logged and produce an empty result. Save failures are
// returned.
//
// After every successful Save the store notifies subscribers registered via
// Subscribe, so readers can re-fetch without tracking invalidation.
//
// Seed is an explicit startup step that fills an empty expense collection
// with a few example records exactly once per database.
package store
