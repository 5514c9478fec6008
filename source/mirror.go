package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luochenglcs/repotrust/repodata"
	"github.com/luochenglcs/repotrust/repolog"
	sqlquery "github.com/luochenglcs/repotrust/source/sqlquery"
)

// Path resolves a repomd location inside a local mirror root. Locations
// that climb out of root are refused.
func Path(root, location string) (string, error) {
	rel := filepath.FromSlash(strings.TrimLeft(location, "/"))
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("location %q escapes the mirror root", location)
	}
	return filepath.Join(root, rel), nil
}

func needsOpen(ref repodata.Data) bool {
	return ref.OpenChecksum != nil || ref.OpenSize != nil || IsDatabase(ref)
}

// IsDatabase reports whether ref is a sqlite database artifact.
func IsDatabase(ref repodata.Data) bool {
	return strings.HasSuffix(ref.Kind, "_db")
}

// VerifyTree verifies every entry of md against the files under root. A
// file that cannot be read or decompressed makes that entry untrusted; the
// other entries are still checked. Entries in a compression format that
// cannot be inflated are verified on their stored bytes only.
func VerifyTree(ctx context.Context, root string, md repodata.Repomd, workers int) []repodata.Result {
	jobs := make([]repodata.Job, len(md.Data))
	loadErrs := make([]error, len(md.Data))
	decodeErrs := make([]error, len(md.Data))

	for i, ref := range md.Data {
		jobs[i].Ref = ref
		path, err := Path(root, ref.Location)
		if err != nil {
			loadErrs[i] = err
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			loadErrs[i] = err
			continue
		}
		jobs[i].Data = data
		if !needsOpen(ref) {
			continue
		}
		var limit uint64
		if ref.OpenSize != nil {
			limit = *ref.OpenSize
		}
		open, err := Decompress(ref.Location, data, limit)
		if errors.Is(err, ErrUnsupportedCompression) {
			repolog.L.Warn("%s %s: %v, open checksum not verified", ref.Kind, ref.Location, err)
			continue
		}
		if err != nil {
			decodeErrs[i] = err
			continue
		}
		jobs[i].Open = open
	}

	results := repodata.VerifyAll(ctx, jobs, workers)
	for i := range results {
		ref := md.Data[i]
		switch {
		case loadErrs[i] != nil:
			results[i].Err = loadErrs[i]
		case !results[i].Trusted():
		case decodeErrs[i] != nil:
			// The stored bytes are what repomd promised but do not inflate.
			results[i].Err = decodeErrs[i]
		case IsDatabase(ref) && jobs[i].Open != nil:
			results[i].Err = checkDatabase(ref, jobs[i].Open)
		}
		if results[i].Trusted() {
			repolog.L.Debug("%s %s trusted", ref.Kind, ref.Location)
		} else {
			repolog.L.Warn("%s %s untrusted: %v", ref.Kind, ref.Location, results[i].Err)
		}
	}
	return results
}

func checkDatabase(ref repodata.Data, open []byte) error {
	dir, err := os.MkdirTemp("", "repotrust-db-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	// ref.Kind is untrusted and never part of the path.
	path := filepath.Join(dir, "db.sqlite")
	if err := os.WriteFile(path, open, 0o600); err != nil {
		return err
	}
	return sqlquery.CheckDatabaseVersion(path, ref)
}
