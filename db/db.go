package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// DB is the process-wide store connection manager. Connect is idempotent:
// concurrent calls during cold start converge on one underlying dial.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
