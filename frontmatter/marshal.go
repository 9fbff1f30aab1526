package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Field is one ordered header entry. Value is a string, a []string or a
// nested []Field.
type Field struct {
	Key   string
	Value any
}

// Marshal writes fields as a delimited header block followed by body.
// Strings are double-quoted and string lists use flow style, so the output
// reads like `topics: ["bitcoin", "defi"]`.
func Marshal(fields []Field, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Delimiter + "\n")
	if len(fields) > 0 {
		node, err := mappingNode(fields)
		if err != nil {
			return nil, err
		}
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, fmt.Errorf("frontmatter: encode header: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("frontmatter: encode header: %w", err)
		}
	}
	buf.WriteString(Delimiter + "\n")
	if len(body) > 0 {
		buf.WriteByte('\n')
		buf.Write(body)
	}
	return buf.Bytes(), nil
}

func mappingNode(fields []Field) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		value, err := valueNode(f)
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			value,
		)
	}
	return m, nil
}

func valueNode(f Field) (*yaml.Node, error) {
	switch v := f.Value.(type) {
	case string:
		return quoted(v), nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, s := range v {
			seq.Content = append(seq.Content, quoted(s))
		}
		return seq, nil
	case []Field:
		return mappingNode(v)
	default:
		return nil, fmt.Errorf("frontmatter: unsupported value for %q: %T", f.Key, f.Value)
	}
}

func quoted(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle}
}
