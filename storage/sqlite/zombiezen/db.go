package zombiezen

import (
	"fmt"
	"runtime"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// BusyTimeout is how long a connection waits for a locked database before
// failing with SQLITE_BUSY.
const BusyTimeout = 5 * time.Second

// NewPool opens a WAL mode pool on dbPath. refine and import-doc write from
// one goroutine while the pool is also used for reads, so every connection
// waits on locks instead of failing.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		PoolSize:    runtime.NumCPU(),
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite pool at %s: %w", dbPath, err)
	}
	return pool, nil
}

// prepareConn runs once on every new connection. Pragmas are executed one by
// one, outside of any transaction.
func prepareConn(conn *sqlite.Conn) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d;", BusyTimeout.Milliseconds()),
		// WAL syncs at checkpoints only
		"PRAGMA synchronous = NORMAL;",
	}

	for _, p := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, p, nil); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
