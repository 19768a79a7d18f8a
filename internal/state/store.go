// Package state persists the game world and session transcripts in a SQL
// database. SQLite (modernc.org/sqlite) is the default; PostgreSQL is
// reachable through the pgx stdlib driver.
package state

import (
	"time"

	"github.com/leapstack-labs/leapverb/pkg/world"
)

// Supported database/sql driver names.
const (
	DriverSQLite = "sqlite"
	DriverPgx    = "pgx"
)

// Turn is one recorded command and its outcome.
type Turn struct {
	ID         string
	SessionID  string
	Seq        int
	Command    string
	Output     string
	Understood bool
	CreatedAt  time.Time
}

// Seed is the initial content of a world.
type Seed struct {
	Start   string
	Rooms   []*world.Room
	Objects []*world.Object
}

var _ world.World = (*Store)(nil)
