// Package repodata models repodata/repomd.xml, the index a yum/dnf
// repository publishes for its metadata files, and verifies fetched
// metadata files against it.
package repodata

import (
	"fmt"
	"sort"
)

// Namespace is the XML namespace of the repomd root element.
const Namespace = "http://linux.duke.edu/metadata/repo"

// Repomd defines the /repodata/repomd.xml structure:
//
//	<repomd xmlns="http://linux.duke.edu/metadata/repo">
//	    <revision>1485854918</revision>
//	    <data type="filelists">...</data>
//	    <data type="primary">...</data>
//	    <data type="primary_db">...</data>
//	</repomd>
//
// Data keeps document order. Kinds are not required to be unique.
type Repomd struct {
	Revision uint64
	Data     []Data
}

// Data defines one <data> entry:
//
//	<data type="primary">
//	    <checksum type="sha256">dabe2ce5...</checksum>
//	    <open-checksum type="sha256">e1e2ffd2...</open-checksum>
//	    <location href="repodata/dabe2ce5...-primary.xml.gz"/>
//	    <timestamp>1485854918</timestamp>
//	    <size>134</size>
//	    <open-size>167</open-size>
//	</data>
//
// Nil pointers mean the element was absent.
type Data struct {
	Kind            string
	Checksum        Checksum
	OpenChecksum    *Checksum
	HeaderChecksum  *Checksum
	Location        string
	Timestamp       uint64
	Size            uint64
	OpenSize        *uint64
	HeaderSize      *uint64
	DatabaseVersion *uint64
}

// Find returns the first entry of the given kind.
func (r Repomd) Find(kind string) (Data, bool) {
	for _, d := range r.Data {
		if d.Kind == kind {
			return d, true
		}
	}
	return Data{}, false
}

// ByKind re-keys the entries by kind. When a kind repeats, the first entry
// wins; Warnings reports the repetition.
func (r Repomd) ByKind() map[string]Data {
	m := make(map[string]Data, len(r.Data))
	for _, d := range r.Data {
		if _, ok := m[d.Kind]; !ok {
			m[d.Kind] = d
		}
	}
	return m
}

// Kinds lists the distinct kinds, sorted.
func (r Repomd) Kinds() []string {
	var kinds []string
	for k := range r.ByKind() {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// OlderThan reports whether r was published before prev. A mirror that
// already holds prev should refuse r.
func (r Repomd) OlderThan(prev Repomd) bool {
	return r.Revision < prev.Revision
}

// Warnings returns problems that do not make the index invalid but that a
// mirror client should know about.
func (r Repomd) Warnings() []string {
	var warns []string
	if len(r.Data) == 0 {
		warns = append(warns, "index has no data entries")
	}
	seen := make(map[string]int)
	for _, d := range r.Data {
		seen[d.Kind]++
		if seen[d.Kind] == 2 {
			warns = append(warns, fmt.Sprintf("data type %q appears more than once", d.Kind))
		}
	}
	return warns
}

// Equal is structural equality; a nil and an empty entry list are equal.
func (r Repomd) Equal(o Repomd) bool {
	if r.Revision != o.Revision || len(r.Data) != len(o.Data) {
		return false
	}
	for i := range r.Data {
		if !r.Data[i].Equal(o.Data[i]) {
			return false
		}
	}
	return true
}

func (d Data) Equal(o Data) bool {
	return d.Kind == o.Kind &&
		d.Checksum.Equal(o.Checksum) &&
		eqChecksum(d.OpenChecksum, o.OpenChecksum) &&
		eqChecksum(d.HeaderChecksum, o.HeaderChecksum) &&
		d.Location == o.Location &&
		d.Timestamp == o.Timestamp &&
		d.Size == o.Size &&
		eqUint(d.OpenSize, o.OpenSize) &&
		eqUint(d.HeaderSize, o.HeaderSize) &&
		eqUint(d.DatabaseVersion, o.DatabaseVersion)
}

func eqChecksum(a, b *Checksum) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func eqUint(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Uint64 returns a pointer to v, for filling optional fields.
func Uint64(v uint64) *uint64 {
	return &v
}
