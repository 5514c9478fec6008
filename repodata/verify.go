package repodata

import "strings"

// Result is the verdict for one artifact. Err is nil only when every check
// that could be made passed; there is no partial trust.
type Result struct {
	Kind     string
	Location string
	Err      error
}

func (r Result) Trusted() bool {
	return r.Err == nil
}

func (r Result) String() string {
	if r.Trusted() {
		return r.Kind + " " + r.Location + ": trusted"
	}
	return r.Kind + " " + r.Location + ": untrusted: " + r.Err.Error()
}

// Verify checks the on-disk bytes of an artifact against the size and
// checksum in ref. The size is compared first, so a truncated download is
// rejected without hashing and even when the algorithm is unsupported.
func Verify(data []byte, ref Data) Result {
	return VerifyOpen(data, nil, ref)
}

// VerifyOpen is Verify plus the open pair: when open is non-nil it is
// checked against open-size and open-checksum, whichever are present.
func VerifyOpen(data, open []byte, ref Data) Result {
	res := Result{Kind: ref.Kind, Location: ref.Location}
	if err := check(data, "size", &ref.Size, "checksum", &ref.Checksum); err != nil {
		res.Err = err
		return res
	}
	if open != nil {
		res.Err = check(open, "open-size", ref.OpenSize, "open-checksum", ref.OpenChecksum)
	}
	return res
}

func check(data []byte, sizeField string, size *uint64, sumField string, sum *Checksum) error {
	if size != nil && uint64(len(data)) != *size {
		return &SizeMismatchError{Field: sizeField, Expected: *size, Actual: uint64(len(data))}
	}
	if sum == nil {
		return nil
	}
	got, err := sum.Sum(data)
	if err != nil {
		return err
	}
	if got != strings.ToLower(sum.Digest) {
		return &ChecksumMismatchError{Field: sumField, Algorithm: sum.Algorithm, Expected: sum.Digest, Actual: got}
	}
	return nil
}
