package repodata

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIndex() Repomd {
	return Repomd{
		Revision: 1668072600,
		Data: []Data{
			fullPrimary(),
			{Kind: "other", Checksum: Checksum{Algorithm: "sha256", Digest: "01"}, Location: "repodata/other.xml.gz", Timestamp: 5, Size: 6},
			{Kind: "primary", Checksum: Checksum{Algorithm: "sha256", Digest: "02"}, Location: "repodata/primary-2.xml.gz", Timestamp: 7, Size: 8},
		},
	}
}

func TestFindAndByKind(t *testing.T) {
	md := sampleIndex()

	d, ok := md.Find("primary")
	require.True(t, ok)
	assert.Equal(t, primaryHref, d.Location)

	_, ok = md.Find("updateinfo")
	assert.False(t, ok)

	byKind := md.ByKind()
	assert.Len(t, byKind, 2)
	assert.Equal(t, primaryHref, byKind["primary"].Location)
	assert.Equal(t, []string{"other", "primary"}, md.Kinds())
}

func TestWarningsDuplicateKind(t *testing.T) {
	assert.Equal(t, []string{`data type "primary" appears more than once`}, sampleIndex().Warnings())
}

func TestOlderThan(t *testing.T) {
	prev := Repomd{Revision: 10}
	assert.True(t, Repomd{Revision: 9}.OlderThan(prev))
	assert.False(t, Repomd{Revision: 10}.OlderThan(prev))
	assert.False(t, Repomd{Revision: 11}.OlderThan(prev))
}

func TestEqual(t *testing.T) {
	a := sampleIndex()
	b := sampleIndex()
	assert.True(t, a.Equal(b))

	b.Data[0].OpenSize = nil
	assert.False(t, a.Equal(b))

	b = sampleIndex()
	b.Data[0].HeaderChecksum = &Checksum{Algorithm: "sha256", Digest: "ff"}
	assert.False(t, a.Equal(b))

	assert.True(t, Repomd{Revision: 1}.Equal(Repomd{Revision: 1, Data: []Data{}}))
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleIndex()))
	out := buf.String()

	assert.Contains(t, out, "Revision:  1668072600")
	assert.Contains(t, out, "[primary]")
	assert.Contains(t, out, "sha256:"+primarySum)
	assert.Contains(t, out, "2022-11-10T09:28:38Z")
	assert.Contains(t, out, `warning: data type "primary" appears more than once`)
}
