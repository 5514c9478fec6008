// Package sqlquery reads the createrepo sqlite databases referenced by
// *_db entries of repomd.xml.
package sqlquery

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/luochenglcs/repotrust/repodata"
	"github.com/luochenglcs/repotrust/repolog"

	_ "modernc.org/sqlite"
)

// ErrVersionMismatch is returned when db_info.dbversion disagrees with the
// database_version repomd.xml declares.
var ErrVersionMismatch = errors.New("database version mismatch")

// DBInfo is the single db_info row createrepo writes:
//
//	CREATE TABLE db_info (dbversion INTEGER, checksum TEXT);
type DBInfo struct {
	Version  uint64
	Checksum string
}

// ReadDBInfo reads db_info from the decompressed database at dbPath.
func ReadDBInfo(dbPath string) (DBInfo, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return DBInfo{}, fmt.Errorf("not exist db: %s: %w", dbPath, err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return DBInfo{}, fmt.Errorf("open db %s: %w", dbPath, err)
	}
	defer db.Close()

	var info DBInfo
	var sum sql.NullString
	err = db.QueryRow(`SELECT dbversion, checksum FROM db_info LIMIT 1`).Scan(&info.Version, &sum)
	if errors.Is(err, sql.ErrNoRows) {
		return DBInfo{}, fmt.Errorf("db %s: db_info is empty", dbPath)
	}
	if err != nil {
		return DBInfo{}, fmt.Errorf("query db_info in %s: %w", dbPath, err)
	}
	info.Checksum = sum.String
	repolog.L.Debug("db %s: dbversion %d checksum %s", dbPath, info.Version, info.Checksum)
	return info, nil
}

// CheckDatabaseVersion compares the database at dbPath with ref. A reference
// without database_version is accepted as long as the database opens.
func CheckDatabaseVersion(dbPath string, ref repodata.Data) error {
	info, err := ReadDBInfo(dbPath)
	if err != nil {
		return err
	}
	if ref.DatabaseVersion != nil && *ref.DatabaseVersion != info.Version {
		return fmt.Errorf("%w: %s declares %d, database has %d",
			ErrVersionMismatch, ref.Kind, *ref.DatabaseVersion, info.Version)
	}
	return nil
}
