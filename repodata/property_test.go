package repodata

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genChecksum() gopter.Gen {
	return gen.Struct(reflect.TypeOf(Checksum{}), map[string]gopter.Gen{
		"Algorithm": gen.OneConstOf("sha1", "sha256", "sha512", "sha3-256"),
		"Digest":    gen.RegexMatch("[0-9a-f]{1,64}"),
	})
}

func genData() gopter.Gen {
	return gen.Struct(reflect.TypeOf(Data{}), map[string]gopter.Gen{
		"Kind":            gen.OneConstOf("primary", "filelists", "other", "primary_db", "updateinfo"),
		"Checksum":        genChecksum(),
		"OpenChecksum":    gen.PtrOf(genChecksum()),
		"HeaderChecksum":  gen.PtrOf(genChecksum()),
		"Location":        gen.Identifier().Map(func(s string) string { return "repodata/" + s }),
		"Timestamp":       gen.UInt64(),
		"Size":            gen.UInt64(),
		"OpenSize":        gen.PtrOf(gen.UInt64()),
		"HeaderSize":      gen.PtrOf(gen.UInt64()),
		"DatabaseVersion": gen.PtrOf(gen.UInt64()),
	})
}

func genRepomd() gopter.Gen {
	return gen.Struct(reflect.TypeOf(Repomd{}), map[string]gopter.Gen{
		"Revision": gen.UInt64(),
		"Data":     gen.SliceOf(genData()),
	})
}

func TestRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Parse(Marshal(md)) == md", prop.ForAll(
		func(md Repomd, indent, decl bool) bool {
			out, err := Marshal(md, Options{Indent: indent, Declaration: decl})
			if err != nil {
				return false
			}
			back, err := Parse(out)
			if err != nil {
				return false
			}
			return md.Equal(back)
		},
		genRepomd(), gen.Bool(), gen.Bool(),
	))

	properties.Property("marshal is deterministic", prop.ForAll(
		func(d Data) bool {
			a, errA := MarshalData(d, Options{})
			b, errB := MarshalData(d, Options{})
			return errA == nil && errB == nil && string(a) == string(b)
		},
		genData(),
	))

	properties.TestingRun(t)
}

func TestDigestNormalizationProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("case of the input digest does not matter", prop.ForAll(
		func(c Checksum) bool {
			frag := `<checksum type="` + c.Algorithm + `">` + strings.ToUpper(c.Digest) + `</checksum>`
			got, err := ParseChecksum([]byte(frag))
			return err == nil && got.Equal(NewChecksum(c.Algorithm, c.Digest)) && got.Digest == c.Digest
		},
		genChecksum(),
	))

	properties.TestingRun(t)
}
