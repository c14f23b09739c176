// Package expenses provides the client-side persistence layer for expense
// records.
//
// # Overview
//
// Repository describes the operations the local store needs: insert, delete
// by id, list and count. SQLiteRepository implements it over a dbx.DBTX, so
// the same type works on a *sql.DB or inside a transaction started by
// dbx.WithTx.
//
// # Data Model
//
// created_at is stored as Unix nanoseconds and amounts as integer cents.
// List orders by created_at and then rowid, which follows insertion order
// for records created in the same instant.
package expenses
