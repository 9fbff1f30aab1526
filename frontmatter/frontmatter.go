// Package frontmatter splits content files into a structured header block and
// a markdown body, and writes header blocks back in a canonical form.
package frontmatter

import (
	"bytes"
	"fmt"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes a header block. It must sit on a line of its own.
const Delimiter = "---"

var bom = []byte("\ufeff")

// Header is the untyped key/value view of a header block. Values are whatever
// the YAML decoder produced: strings, numbers, bools, []any and map[string]any.
type Header map[string]any

// ParseError reports a header block that exists but could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "frontmatter: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var yamlFormat = adrg.NewFormat(Delimiter, Delimiter, yaml.Unmarshal)

// Split separates the header block from the body. ok is false when raw does
// not open with a delimiter line or the header is never closed.
func Split(raw []byte) (head, body []byte, ok bool) {
	src := bytes.TrimPrefix(raw, bom)
	first, rest, more := cutLine(src)
	if !more || !isDelimiter(first) {
		return nil, raw, false
	}
	offset := 0
	remaining := rest
	for {
		line, next, more := cutLine(remaining)
		if isDelimiter(line) {
			return rest[:offset], trimLeadingNewlines(next), true
		}
		if !more {
			return nil, raw, false
		}
		offset += len(line) + 1
		remaining = next
	}
}

// Parse splits raw and decodes its header block. Text without a header, or
// with an unterminated one, comes back as an empty header and the full text
// as body. A header that fails to decode returns a *ParseError.
func Parse(raw []byte) (Header, []byte, error) {
	head, body, ok := Split(raw)
	if !ok {
		return Header{}, raw, nil
	}
	h := Header{}
	if len(bytes.TrimSpace(head)) == 0 {
		return h, body, nil
	}

	var canonical bytes.Buffer
	canonical.WriteString(Delimiter + "\n")
	canonical.Write(head)
	if !bytes.HasSuffix(head, []byte("\n")) {
		canonical.WriteByte('\n')
	}
	canonical.WriteString(Delimiter + "\n")

	if _, err := adrg.Parse(&canonical, &h, yamlFormat); err != nil {
		return Header{}, nil, &ParseError{Err: err}
	}
	if h == nil {
		h = Header{}
	}
	return h, body, nil
}

// String returns the value of key when it is a scalar, formatted as text.
func (h Header) String(key string) string {
	switch v := h[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []any, map[string]any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Map returns the nested mapping stored under key, or nil.
func (h Header) Map(key string) Header {
	if m, ok := h[key].(map[string]any); ok {
		return Header(m)
	}
	return nil
}

func cutLine(b []byte) (line, rest []byte, more bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return b, nil, false
	}
	return b[:i], b[i+1:], true
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimRight(line, " \t\r")) == Delimiter
}

func trimLeadingNewlines(b []byte) []byte {
	return bytes.TrimLeft(b, "\r\n")
}
