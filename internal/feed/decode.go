package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	ErrDecode    = errors.New("feed: buffer is not valid windows-1251")
	ErrStructure = errors.New("feed: no rows under the feed root")
)

// RawRow is the loosely-typed row mapping as parsed, tag name -> Value.
// Unknown tags ride along and are ignored by the normalizer.
type RawRow map[string]Value

// DecodeRows converts the legacy-encoded buffer to UTF-8 and parses the
// root's element children into rows, preserving document order. Decode and
// structure failures are fatal to the whole batch.
func DecodeRows(raw []byte) ([]RawRow, error) {
	text, err := decodeCharset(raw)
	if err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(strings.NewReader(text))
	// The buffer is already UTF-8; the declaration may still claim the
	// legacy charset.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	rows := make([]RawRow, 0)
	inRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStructure, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !inRoot {
			inRoot = true
			continue
		}
		child, err := parseElement(dec, start)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStructure, err)
		}
		if child.Kind == Object {
			rows = append(rows, RawRow(child.Fields))
		} else {
			// Scalar rows carry no tags at all; the normalizer
			// records them as row issues.
			rows = append(rows, RawRow{})
		}
	}
	if !inRoot || len(rows) == 0 {
		return nil, ErrStructure
	}
	return rows, nil
}

func decodeCharset(raw []byte) (string, error) {
	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if strings.ContainsRune(string(decoded), utf8.RuneError) {
		return "", ErrDecode
	}
	return string(decoded), nil
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (Value, error) {
	var text strings.Builder
	var fields map[string]Value

	addField := func(name string, child Value) {
		if fields == nil {
			fields = map[string]Value{}
		}
		existing, ok := fields[name]
		if !ok {
			fields[name] = child
			return
		}
		if existing.Kind == List {
			existing.Items = append(existing.Items, child)
			fields[name] = existing
			return
		}
		fields[name] = Value{Kind: List, Items: []Value{existing, child}}
	}

	for _, attr := range start.Attr {
		addField("@"+strings.ToUpper(attr.Name.Local), Value{Kind: Scalar, Text: strings.TrimSpace(attr.Value)})
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return Value{}, err
			}
			addField(strings.ToUpper(t.Name.Local), child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			v := Value{Kind: Scalar, Text: strings.TrimSpace(text.String())}
			if fields != nil {
				v.Kind = Object
				v.Fields = fields
			}
			return v, nil
		}
	}
}
