package lvimg

import (
	"database/sql"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/lvtools/lvimg/lvbin"
	_ "github.com/mattn/go-sqlite3"
)

// IconDB is a catalog of converted icons backed by SQLite. Containers
// are deduplicated by content digest, so re-running a conversion over
// the same sources is idempotent.
type IconDB struct {
	db *sql.DB
}

func OpenIconDB(file string) (*IconDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS icon (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL, digest TEXT NOT NULL UNIQUE, format INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, bin BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &IconDB{
		db: db,
	}, nil
}

func (db *IconDB) Close() error {
	return db.db.Close()
}

// Add stores a container under its content digest, returning the row
// id. An identical container already in the catalog is returned as-is
// rather than inserted again.
func (db *IconDB) Add(name string, header lvbin.Header, bin []byte) (int64, error) {
	digest := fmt.Sprintf("%016x", xxhash.Sum64(bin))

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM icon WHERE digest = ?", digest).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO icon (name, digest, format, width, height, bin) VALUES (?, ?, ?, ?, ?, ?)",
			name, digest, int(header.Format), header.Width, header.Height, bin)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// FindByName returns the most recently added container stored under
// name, or nil when the catalog has no such icon.
func (db *IconDB) FindByName(name string) ([]byte, error) {
	var bin []byte
	switch err := db.db.QueryRow("SELECT bin FROM icon WHERE name = ? ORDER BY id DESC LIMIT 1", name).Scan(&bin); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return bin, nil
	default:
		return nil, err
	}
}
