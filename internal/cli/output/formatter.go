package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/respkv/pkg/resp"
)

// Format represents the output format.
type Format string

const (
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// ParseFormat validates a format name. The empty string selects plain.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatPlain:
		return FormatPlain, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want plain, json or yaml)", s)
	}
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &PlainFormatter{}
	}
}

// Value is the structured form of a reply used by the json and yaml formats.
type Value struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// ValueOf converts a reply. A null bulk string has a nil Value.
func ValueOf(r resp.Reply) Value {
	v := Value{Type: r.Kind.String()}
	switch r.Kind {
	case resp.KindArray:
		items := r.Items
		if items == nil {
			items = []string{}
		}
		v.Value = items
	case resp.KindInteger:
		v.Value = r.Int
	case resp.KindBulkString:
		if r.Null {
			v.Type = "null"
		} else {
			v.Value = r.Str
		}
	default:
		v.Value = r.Str
	}
	return v
}

func structured(data any) any {
	if r, ok := data.(resp.Reply); ok {
		return ValueOf(r)
	}
	return data
}
