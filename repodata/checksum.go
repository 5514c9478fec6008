package repodata

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"
)

// Checksum is an algorithm-tagged digest:
//
//	<checksum type="sha256">dabe2ce5481d23de1f4f52bdcfee0f9af98316c9e0de2ce8123adeefa0dd08b9</checksum>
type Checksum struct {
	Algorithm string
	Digest    string
}

// NewChecksum builds a Checksum from untrusted input. The algorithm is kept
// verbatim, the digest is lowercased so comparisons are stable.
func NewChecksum(algorithm, digest string) Checksum {
	return Checksum{
		Algorithm: algorithm,
		Digest:    strings.ToLower(strings.TrimSpace(digest)),
	}
}

func (c Checksum) String() string {
	return c.Algorithm + ":" + c.Digest
}

// Equal reports whether both checksums name the same algorithm and digest.
func (c Checksum) Equal(o Checksum) bool {
	return c.Algorithm == o.Algorithm && c.Digest == o.Digest
}

// Supported reports whether the algorithm can be computed by this package.
func (c Checksum) Supported() bool {
	_, ok := hashes[strings.ToLower(c.Algorithm)]
	return ok
}

// Sum computes the digest of data with the checksum's algorithm and returns
// it as lowercase hex.
func (c Checksum) Sum(data []byte) (string, error) {
	h, err := NewHash(c.Algorithm)
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// "sha" is what createrepo writes for sha1 in old repositories.
var hashes = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha":    sha1.New,
	"sha1":   sha1.New,
	"sha224": sha256.New224,
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

// NewHash returns a fresh hash for a repomd algorithm name, matched without
// regard to case.
func NewHash(algorithm string) (hash.Hash, error) {
	fn, ok := hashes[strings.ToLower(algorithm)]
	if !ok {
		return nil, &UnsupportedAlgorithmError{Algorithm: algorithm}
	}
	return fn(), nil
}
