package redisserver

import (
	"bufio"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/yndnr/respkv/internal/core/domain"
)

func TestNewDecoder(t *testing.T) {
	tests := []struct {
		mode    string
		want    Decoder
		wantErr bool
	}{
		{"", FrameDecoder{}, false},
		{"resp", FrameDecoder{}, false},
		{"RESP", FrameDecoder{}, false},
		{"tokens", TokenDecoder{}, false},
		{"inline", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, err := NewDecoder(tt.mode)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDecoder(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("NewDecoder(%q) = %T, want %T", tt.mode, got, tt.want)
			}
		})
	}
}

func TestFrameDecoder_Decode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind domain.CommandKind
		wantName string
		wantArgs []string
		wantErr  error
	}{
		{
			name:     "ping",
			input:    "*1\r\n$4\r\nPING\r\n",
			wantKind: domain.KindPing,
			wantName: "ping",
			wantArgs: []string{},
		},
		{
			name:     "set with px",
			input:    "*5\r\n$3\r\nSET\r\n$3\r\nfoo\r\n$3\r\nbar\r\n$2\r\npx\r\n$3\r\n100\r\n",
			wantKind: domain.KindSet,
			wantName: "set",
			wantArgs: []string{"foo", "bar", "px", "100"},
		},
		{
			name:     "value with spaces",
			input:    "*2\r\n$4\r\nECHO\r\n$11\r\nhello world\r\n",
			wantKind: domain.KindEcho,
			wantName: "echo",
			wantArgs: []string{"hello world"},
		},
		{
			name:     "argument case preserved",
			input:    "*2\r\n$3\r\nGET\r\n$3\r\nFoo\r\n",
			wantKind: domain.KindGet,
			wantName: "get",
			wantArgs: []string{"Foo"},
		},
		{
			name:     "inline",
			input:    "ECHO hey\r\n",
			wantKind: domain.KindEcho,
			wantName: "echo",
			wantArgs: []string{"hey"},
		},
		{
			name:     "unknown command",
			input:    "*1\r\n$7\r\nFLUSHDB\r\n",
			wantKind: domain.KindUnknown,
			wantName: "flushdb",
			wantArgs: []string{},
		},
		{
			name:    "empty array",
			input:   "*0\r\n",
			wantErr: domain.ErrMalformedFrame,
		},
		{
			name:    "bad bulk header",
			input:   "*1\r\n:4\r\n",
			wantErr: domain.ErrMalformedFrame,
		},
		{
			name:    "array too long",
			input:   "*100000\r\n",
			wantErr: domain.ErrProtocolLimit,
		},
		{
			name:    "eof",
			input:   "",
			wantErr: io.EOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := FrameDecoder{}.Decode(bufio.NewReader(strings.NewReader(tt.input)))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if cmd.Kind != tt.wantKind || cmd.Name != tt.wantName {
				t.Errorf("Decode() = %v/%q, want %v/%q", cmd.Kind, cmd.Name, tt.wantKind, tt.wantName)
			}
			if !reflect.DeepEqual(cmd.Args, tt.wantArgs) {
				t.Errorf("Decode() args = %q, want %q", cmd.Args, tt.wantArgs)
			}
		})
	}
}

func TestFrameDecoder_Pipelined(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("*1\r\n$4\r\nPING\r\n*2\r\n$3\r\nGET\r\n$1\r\nk\r\n"))
	dec := FrameDecoder{}

	first, err := dec.Decode(r)
	if err != nil || first.Kind != domain.KindPing {
		t.Fatalf("first Decode() = %v, %v, want ping", first, err)
	}
	second, err := dec.Decode(r)
	if err != nil || second.Kind != domain.KindGet || second.Args[0] != "k" {
		t.Fatalf("second Decode() = %v, %v, want get k", second, err)
	}
	if _, err := dec.Decode(r); !errors.Is(err, io.EOF) {
		t.Errorf("third Decode() error = %v, want io.EOF", err)
	}
}

func TestParseTokens(t *testing.T) {
	tests := []struct {
		name     string
		chunk    string
		wantKind domain.CommandKind
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "ping",
			chunk:    "*1\r\n$4\r\nPING\r\n",
			wantKind: domain.KindPing,
		},
		{
			name:     "echo",
			chunk:    "*2\r\n$4\r\nECHO\r\n$5\r\nhello\r\n",
			wantKind: domain.KindEcho,
			wantArgs: []string{"hello"},
		},
		{
			name:     "set px",
			chunk:    "*5\r\n$3\r\nset\r\n$1\r\nk\r\n$1\r\nv\r\n$2\r\nPX\r\n$2\r\n50\r\n",
			wantKind: domain.KindSet,
			wantArgs: []string{"k", "v", "PX", "50"},
		},
		{
			name:     "embedded space desynchronizes",
			chunk:    "*2\r\n$4\r\nECHO\r\n$11\r\nhello world\r\n",
			wantKind: domain.KindEcho,
			wantArgs: []string{"hello"},
		},
		{
			name:    "too few tokens",
			chunk:   "*1\r\n",
			wantErr: true,
		},
		{
			name:    "blank",
			chunk:   "\r\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseTokens(tt.chunk)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrMalformedFrame) {
					t.Fatalf("ParseTokens() error = %v, want ErrMalformedFrame", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTokens() error = %v", err)
			}
			if cmd.Kind != tt.wantKind {
				t.Errorf("ParseTokens() kind = %v, want %v", cmd.Kind, tt.wantKind)
			}
			if !reflect.DeepEqual(cmd.Args, tt.wantArgs) {
				t.Errorf("ParseTokens() args = %q, want %q", cmd.Args, tt.wantArgs)
			}
		})
	}
}

func TestTokenDecoder_Decode(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("*2\r\n$3\r\nGET\r\n$3\r\nfoo\r\n"))

	cmd, err := TokenDecoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cmd.Kind != domain.KindGet || !reflect.DeepEqual(cmd.Args, []string{"foo"}) {
		t.Errorf("Decode() = %+v, want get [foo]", cmd)
	}

	if _, err := (TokenDecoder{}).Decode(r); !errors.Is(err, io.EOF) {
		t.Errorf("Decode() at end error = %v, want io.EOF", err)
	}
}
