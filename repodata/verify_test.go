package repodata

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func refFor(kind string, data []byte) Data {
	return Data{
		Kind:      kind,
		Checksum:  Checksum{Algorithm: "sha256", Digest: sha256Hex(data)},
		Location:  "repodata/" + kind + ".xml",
		Timestamp: 1668072518,
		Size:      uint64(len(data)),
	}
}

func TestVerifyTrusted(t *testing.T) {
	data := []byte("<metadata packages=\"0\"/>")
	res := Verify(data, refFor("primary", data))
	assert.True(t, res.Trusted(), res.String())
	assert.Equal(t, "primary", res.Kind)
}

func TestVerifyUppercaseReferenceDigest(t *testing.T) {
	data := []byte("payload")
	ref := refFor("other", data)
	ref.Checksum.Digest = strings.ToUpper(ref.Checksum.Digest)
	assert.True(t, Verify(data, ref).Trusted())
}

func TestVerifyParsedUppercaseAlgorithm(t *testing.T) {
	data := []byte("payload")
	doc := `<repomd><revision>1</revision><data type="other">` +
		`<checksum type="SHA256">` + sha256Hex(data) + `</checksum>` +
		`<location href="repodata/other.xml"/><timestamp>1</timestamp><size>7</size></data></repomd>`
	md, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "SHA256", md.Data[0].Checksum.Algorithm)
	assert.True(t, Verify(data, md.Data[0]).Trusted())
}

func TestVerifySizeMismatchShortCircuits(t *testing.T) {
	ref := Data{
		Kind:     "primary",
		Checksum: Checksum{Algorithm: "no-such-hash", Digest: "00"},
		Location: "x",
		Size:     20,
	}
	res := Verify(make([]byte, 10), ref)
	require.False(t, res.Trusted())
	assert.True(t, errors.Is(res.Err, ErrSizeMismatch))

	var se *SizeMismatchError
	require.ErrorAs(t, res.Err, &se)
	assert.Equal(t, "size", se.Field)
	assert.Equal(t, uint64(20), se.Expected)
	assert.Equal(t, uint64(10), se.Actual)
}

func TestVerifyChecksumMismatch(t *testing.T) {
	data := []byte("good bytes")
	ref := refFor("primary", data)
	bad := []byte("evil bytes")

	res := Verify(bad, ref)
	require.False(t, res.Trusted())
	var ce *ChecksumMismatchError
	require.ErrorAs(t, res.Err, &ce)
	assert.Equal(t, "checksum", ce.Field)
	assert.Equal(t, ref.Checksum.Digest, ce.Expected)
	assert.Equal(t, sha256Hex(bad), ce.Actual)
}

func TestVerifyUnsupportedAlgorithm(t *testing.T) {
	data := []byte("abc")
	ref := refFor("primary", data)
	ref.Checksum.Algorithm = "whirlpool"

	res := Verify(data, ref)
	require.False(t, res.Trusted())
	assert.True(t, errors.Is(res.Err, ErrUnsupportedAlgorithm))
}

func TestVerifyOpen(t *testing.T) {
	compressed := []byte("compressed")
	open := []byte("decompressed content")
	ref := refFor("primary", compressed)
	ref.OpenChecksum = &Checksum{Algorithm: "sha256", Digest: sha256Hex(open)}
	ref.OpenSize = Uint64(uint64(len(open)))

	assert.True(t, VerifyOpen(compressed, open, ref).Trusted())
	// Without open bytes only the on-disk pair is checked.
	assert.True(t, VerifyOpen(compressed, nil, ref).Trusted())

	res := VerifyOpen(compressed, []byte("decompressed contenT"), ref)
	var ce *ChecksumMismatchError
	require.ErrorAs(t, res.Err, &ce)
	assert.Equal(t, "open-checksum", ce.Field)

	res = VerifyOpen(compressed, open[:4], ref)
	var se *SizeMismatchError
	require.ErrorAs(t, res.Err, &se)
	assert.Equal(t, "open-size", se.Field)

	// A bad on-disk artifact is untrusted even if the open bytes match.
	res = VerifyOpen([]byte("tampered!!"), open, ref)
	assert.True(t, errors.Is(res.Err, ErrChecksumMismatch))
}

func TestVerifyOpenPartialPair(t *testing.T) {
	compressed := []byte("c")
	open := []byte("open")
	ref := refFor("filelists", compressed)
	ref.OpenSize = Uint64(4)
	assert.True(t, VerifyOpen(compressed, open, ref).Trusted())

	ref.OpenSize = nil
	ref.OpenChecksum = &Checksum{Algorithm: "sha256", Digest: sha256Hex(open)}
	assert.True(t, VerifyOpen(compressed, open, ref).Trusted())
}

func TestVerifyAll(t *testing.T) {
	var jobs []Job
	for i := 0; i < 25; i++ {
		data := []byte(fmt.Sprintf("artifact-%d", i))
		ref := refFor(fmt.Sprintf("kind%d", i), data)
		if i%5 == 0 {
			data = append(data, '!')
		}
		jobs = append(jobs, Job{Ref: ref, Data: data})
	}

	results := VerifyAll(context.Background(), jobs, 4)
	require.Len(t, results, len(jobs))
	for i, res := range results {
		assert.Equal(t, jobs[i].Ref.Kind, res.Kind)
		if i%5 == 0 {
			assert.True(t, errors.Is(res.Err, ErrSizeMismatch), "job %d", i)
		} else {
			assert.True(t, res.Trusted(), "job %d: %v", i, res.Err)
		}
	}
}

func TestVerifyAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := []byte("x")
	results := VerifyAll(ctx, []Job{{Ref: refFor("primary", data), Data: data}}, 0)
	require.Len(t, results, 1)
	assert.True(t, errors.Is(results[0].Err, context.Canceled))
	assert.False(t, results[0].Trusted())

	assert.Empty(t, VerifyAll(context.Background(), nil, 8))
}
