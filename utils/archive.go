package utils

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	_ "modernc.org/sqlite"

	"github.com/voxelsplace/vxl/vxl"
)

// The archive is a sqlite database of named map snapshots, so a server can
// keep its rotation history in one file instead of a directory of blobs.
const archiveSchema = `
CREATE TABLE IF NOT EXISTS maps (
	name TEXT PRIMARY KEY,
	w INT NOT NULL,
	h INT NOT NULL,
	d INT NOT NULL,
	bytes INT NOT NULL,
	sum TEXT NOT NULL,
	created_at TEXT NOT NULL,
	data BLOB NOT NULL
);`

func openArchive(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive %s: %w", path, err)
	}
	return db, nil
}

// RunArchiveAdd stores (or replaces) a raw .vxl file under the given name,
// validating that it decodes first.
func RunArchiveAdd(dbPath, name, vxlPath string) error {
	data, err := os.ReadFile(vxlPath)
	if err != nil {
		return err
	}
	size, depth, err := vxl.Size(data)
	if err != nil {
		return fmt.Errorf("detect size of %s: %w", vxlPath, err)
	}
	if _, err := vxl.Create(size, size, depth, data); err != nil {
		return fmt.Errorf("validate %s: %w", vxlPath, err)
	}

	db, err := openArchive(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(
		`INSERT OR REPLACE INTO maps(name, w, h, d, bytes, sum, created_at, data) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		name, size, size, depth, len(data),
		fmt.Sprintf("%016x", xxhash.Sum64(data)),
		time.Now().UTC().Format(time.RFC3339),
		data,
	)
	if err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	fmt.Printf("archived %s (%dx%dx%d, %d bytes)\n", name, size, size, depth, len(data))
	return nil
}

// RunArchiveList prints every archived map.
func RunArchiveList(dbPath string) error {
	db, err := openArchive(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name, w, h, d, bytes, created_at FROM maps ORDER BY name`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, created string
		var w, h, d, n int
		if err := rows.Scan(&name, &w, &h, &d, &n, &created); err != nil {
			return err
		}
		fmt.Printf("%-24s %dx%dx%d %8d bytes  %s\n", name, w, h, d, n, created)
	}
	return rows.Err()
}

// RunArchiveExtract writes an archived map back out as a raw .vxl file,
// re-verifying its digest.
func RunArchiveExtract(dbPath, name, outPath string) error {
	db, err := openArchive(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	var sum string
	var data []byte
	err = db.QueryRow(`SELECT sum, data FROM maps WHERE name = ?`, name).Scan(&sum, &data)
	if err == sql.ErrNoRows {
		return fmt.Errorf("no archived map named %q", name)
	}
	if err != nil {
		return err
	}
	if got := fmt.Sprintf("%016x", xxhash.Sum64(data)); got != sum {
		return fmt.Errorf("%s: checksum mismatch (want %s, got %s)", name, sum, got)
	}
	return os.WriteFile(outPath, data, 0o644)
}
