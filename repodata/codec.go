package repodata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Options controls Marshal output.
type Options struct {
	// Indent pretty-prints with two-space nesting; otherwise the document
	// is written on one line.
	Indent bool
	// Declaration prepends <?xml version="1.0" encoding="UTF-8"?>.
	Declaration bool
}

// The wire structs keep numbers as text so that a bad value can be reported
// with the data type it belongs to. Field order is the canonical emit order.
type wireRepomd struct {
	XMLName  xml.Name
	Revision *string    `xml:"revision"`
	Data     []wireData `xml:"data"`
}

type wireData struct {
	XMLName         xml.Name      `xml:"data"`
	Type            string        `xml:"type,attr"`
	Checksum        *wireChecksum `xml:"checksum"`
	OpenChecksum    *wireChecksum `xml:"open-checksum"`
	HeaderChecksum  *wireChecksum `xml:"header-checksum"`
	Location        *wireLocation `xml:"location"`
	Timestamp       *string       `xml:"timestamp"`
	Size            *string       `xml:"size"`
	OpenSize        *string       `xml:"open-size"`
	DatabaseVersion *string       `xml:"database_version"`
	HeaderSize      *string       `xml:"header-size"`
}

type wireChecksum struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type wireLocation struct {
	Href string `xml:"href,attr"`
}

// Parse decodes a repomd.xml document.
func Parse(doc []byte) (Repomd, error) {
	return ParseReader(bytes.NewReader(doc))
}

// ParseReader decodes a repomd.xml document from r. The root namespace is
// checked before the body is decoded; on any error the returned Repomd is
// the zero value.
func ParseReader(r io.Reader) (Repomd, error) {
	dec := xml.NewDecoder(r)
	start, err := rootElement(dec)
	if err != nil {
		return Repomd{}, err
	}
	if start.Name.Local != "repomd" {
		return Repomd{}, &SchemaError{Field: "repomd", Reason: "root element is <" + start.Name.Local + ">"}
	}
	// An unqualified root is accepted; a foreign namespace is not.
	if start.Name.Space != "" && start.Name.Space != Namespace {
		return Repomd{}, &NamespaceError{Got: start.Name.Space}
	}

	var w wireRepomd
	if err := dec.DecodeElement(&w, &start); err != nil {
		return Repomd{}, &SchemaError{Field: "repomd", Reason: err.Error()}
	}
	if err := trailer(dec); err != nil {
		return Repomd{}, err
	}
	return w.model()
}

// trailer allows only whitespace, comments and processing instructions after
// the root element.
func trailer(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &SchemaError{Field: "repomd", Reason: err.Error()}
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return &SchemaError{Field: "repomd", Reason: "text after root element"}
			}
		default:
			return &SchemaError{Field: "repomd", Reason: "content after root element"}
		}
	}
}

func rootElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, &SchemaError{Field: "repomd", Reason: "document has no root element"}
		}
		if err != nil {
			return xml.StartElement{}, &SchemaError{Field: "repomd", Reason: err.Error()}
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func (w *wireRepomd) model() (Repomd, error) {
	if w.Revision == nil {
		return Repomd{}, &SchemaError{Field: "revision", Reason: "missing"}
	}
	rev, err := parseUint("revision", "", *w.Revision)
	if err != nil {
		return Repomd{}, err
	}

	md := Repomd{Revision: rev, Data: make([]Data, 0, len(w.Data))}
	for i := range w.Data {
		d, err := w.Data[i].model()
		if err != nil {
			return Repomd{}, err
		}
		md.Data = append(md.Data, d)
	}
	return md, nil
}

func (w *wireData) model() (Data, error) {
	kind := w.Type
	if kind == "" {
		return Data{}, &SchemaError{Field: "data@type", Reason: "missing"}
	}
	d := Data{Kind: kind}

	if w.Checksum == nil {
		return Data{}, &SchemaError{Field: "checksum", Kind: kind, Reason: "missing"}
	}
	var err error
	if d.Checksum, err = w.Checksum.model("checksum", kind); err != nil {
		return Data{}, err
	}
	if d.OpenChecksum, err = optChecksum(w.OpenChecksum, "open-checksum", kind); err != nil {
		return Data{}, err
	}
	if d.HeaderChecksum, err = optChecksum(w.HeaderChecksum, "header-checksum", kind); err != nil {
		return Data{}, err
	}

	if w.Location == nil {
		return Data{}, &SchemaError{Field: "location", Kind: kind, Reason: "missing"}
	}
	if w.Location.Href == "" {
		return Data{}, &SchemaError{Field: "location@href", Kind: kind, Reason: "missing or empty"}
	}
	d.Location = w.Location.Href

	if w.Timestamp == nil {
		return Data{}, &SchemaError{Field: "timestamp", Kind: kind, Reason: "missing"}
	}
	if d.Timestamp, err = parseUint("timestamp", kind, *w.Timestamp); err != nil {
		return Data{}, err
	}
	if w.Size == nil {
		return Data{}, &SchemaError{Field: "size", Kind: kind, Reason: "missing"}
	}
	if d.Size, err = parseUint("size", kind, *w.Size); err != nil {
		return Data{}, err
	}

	if d.OpenSize, err = optUint(w.OpenSize, "open-size", kind); err != nil {
		return Data{}, err
	}
	if d.DatabaseVersion, err = optUint(w.DatabaseVersion, "database_version", kind); err != nil {
		return Data{}, err
	}
	if d.HeaderSize, err = optUint(w.HeaderSize, "header-size", kind); err != nil {
		return Data{}, err
	}
	return d, nil
}

func (w *wireChecksum) model(field, kind string) (Checksum, error) {
	if w.Type == "" {
		return Checksum{}, &SchemaError{Field: field + "@type", Kind: kind, Reason: "missing"}
	}
	return NewChecksum(w.Type, w.Value), nil
}

func optChecksum(w *wireChecksum, field, kind string) (*Checksum, error) {
	if w == nil {
		return nil, nil
	}
	c, err := w.model(field, kind)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func parseUint(field, kind, text string) (uint64, error) {
	v := strings.TrimSpace(text)
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, &TypeError{Field: field, Kind: kind, Value: v, Err: err}
	}
	return n, nil
}

func optUint(text *string, field, kind string) (*uint64, error) {
	if text == nil {
		return nil, nil
	}
	n, err := parseUint(field, kind, *text)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ParseChecksum decodes a single checksum fragment such as
// <checksum type="sha256">ABCD</checksum>. The element name is not checked.
func ParseChecksum(fragment []byte) (Checksum, error) {
	var w wireChecksum
	if err := xml.Unmarshal(fragment, &w); err != nil {
		return Checksum{}, &SchemaError{Field: "checksum", Reason: err.Error()}
	}
	return w.model("checksum", "")
}

// Marshal encodes md as a repomd.xml document. It refuses an index that
// Parse would reject, so Parse(Marshal(md)) always succeeds.
func Marshal(md Repomd, opts Options) ([]byte, error) {
	w := wireRepomd{
		XMLName:  xml.Name{Space: Namespace, Local: "repomd"},
		Revision: text(md.Revision),
		Data:     make([]wireData, 0, len(md.Data)),
	}
	for _, d := range md.Data {
		wd, err := wire(d)
		if err != nil {
			return nil, err
		}
		w.Data = append(w.Data, wd)
	}
	return encode(w, opts)
}

// MarshalData encodes a single <data> element.
func MarshalData(d Data, opts Options) ([]byte, error) {
	wd, err := wire(d)
	if err != nil {
		return nil, err
	}
	return encode(wd, opts)
}

// MarshalChecksum encodes c as a <checksum> element, attribute and text
// exactly as stored.
func MarshalChecksum(c Checksum) ([]byte, error) {
	if c.Algorithm == "" {
		return nil, &SchemaError{Field: "checksum@type", Reason: "empty algorithm"}
	}
	return xml.Marshal(struct {
		XMLName xml.Name `xml:"checksum"`
		wireChecksum
	}{wireChecksum: wireChecksum{Type: c.Algorithm, Value: c.Digest}})
}

func encode(v any, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if opts.Declaration {
		buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
		if opts.Indent {
			buf.WriteByte('\n')
		}
	}
	enc := xml.NewEncoder(&buf)
	if opts.Indent {
		enc.Indent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func wire(d Data) (wireData, error) {
	if d.Kind == "" {
		return wireData{}, &SchemaError{Field: "data@type", Reason: "empty kind"}
	}
	if d.Location == "" {
		return wireData{}, &SchemaError{Field: "location@href", Kind: d.Kind, Reason: "empty location"}
	}
	w := wireData{
		Type:      d.Kind,
		Location:  &wireLocation{Href: d.Location},
		Timestamp: text(d.Timestamp),
		Size:      text(d.Size),
	}
	var err error
	if w.Checksum, err = wireSum(&d.Checksum, "checksum", d.Kind); err != nil {
		return wireData{}, err
	}
	if w.OpenChecksum, err = wireSum(d.OpenChecksum, "open-checksum", d.Kind); err != nil {
		return wireData{}, err
	}
	if w.HeaderChecksum, err = wireSum(d.HeaderChecksum, "header-checksum", d.Kind); err != nil {
		return wireData{}, err
	}
	w.OpenSize = optText(d.OpenSize)
	w.DatabaseVersion = optText(d.DatabaseVersion)
	w.HeaderSize = optText(d.HeaderSize)
	return w, nil
}

func wireSum(c *Checksum, field, kind string) (*wireChecksum, error) {
	if c == nil {
		return nil, nil
	}
	if c.Algorithm == "" {
		return nil, &SchemaError{Field: field + "@type", Kind: kind, Reason: "empty algorithm"}
	}
	return &wireChecksum{Type: c.Algorithm, Value: c.Digest}, nil
}

func text(n uint64) *string {
	s := strconv.FormatUint(n, 10)
	return &s
}

func optText(n *uint64) *string {
	if n == nil {
		return nil
	}
	return text(*n)
}
