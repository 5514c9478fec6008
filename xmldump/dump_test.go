package xmldump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<!-- generated -->
<repomd xmlns="http://linux.duke.edu/metadata/repo">
  <revision>1668072600</revision>
  <data type="primary"><location href="repodata/primary.xml.gz"/></data>
</repomd>`

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, strings.NewReader(doc)))

	want := `procinst xml "version=\"1.0\" encoding=\"UTF-8\""
comment "generated"
start repomd xmlns="http://linux.duke.edu/metadata/repo"
  start revision
    text "1668072600"
  end revision
  start data type="primary"
    start location href="repodata/primary.xml.gz"
    end location
  end data
end repomd
`
	assert.Equal(t, want, buf.String())
}

func TestDumpStopsAtSyntaxError(t *testing.T) {
	var buf bytes.Buffer
	err := Dump(&buf, strings.NewReader(`<repomd><revision>1</revision><data type="x`))
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "start revision")
}
