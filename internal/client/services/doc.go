// Package services contains the application services of the finkeeper
// client. Each service receives its collaborators (the local store, the API
// client, repositories) through its constructor.
package services
