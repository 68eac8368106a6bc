package repl

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{"ping", []string{"ping"}, false},
		{"  set  k   v ", []string{"set", "k", "v"}, false},
		{`echo "hello world"`, []string{"echo", "hello world"}, false},
		{`echo 'it''s'`, []string{"echo", "its"}, false},
		{`echo "a\"b\n"`, []string{"echo", "a\"b\n"}, false},
		{`echo 'a\nb'`, []string{"echo", `a\nb`}, false},
		{`set k ""`, []string{"set", "k", ""}, false},
		{"", nil, false},
		{`echo "open`, nil, true},
		{`echo 'open`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := SplitArgs(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitArgs(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnbalancedQuotes) {
					t.Errorf("error = %v, want ErrUnbalancedQuotes", err)
				}
				return
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("SplitArgs(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "QUIT\n"},
		{"EOF", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			r := New(func([]string) error {
				called = true
				return nil
			}, WithIO(strings.NewReader(tt.input), &bytes.Buffer{}))

			if err := r.Run(); err != nil {
				t.Errorf("Run() error = %v", err)
			}
			if called {
				t.Error("executor called, want none")
			}
		})
	}
}

func TestREPL_Run_Executes(t *testing.T) {
	var got [][]string
	output := &bytes.Buffer{}

	r := New(func(args []string) error {
		got = append(got, args)
		if args[0] == "fail" {
			return errors.New("boom")
		}
		return nil
	}, WithIO(strings.NewReader("\nset k \"v 1\"\nfail\nget k"), output), WithPrompt("test> "))

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("executed %d commands, want 3: %q", len(got), got)
	}
	if got[0][2] != "v 1" {
		t.Errorf("quoted arg = %q, want %q", got[0][2], "v 1")
	}
	if got[2][0] != "get" {
		t.Errorf("last command = %q, want get (line without trailing newline)", got[2])
	}
	if !strings.Contains(output.String(), "Error: boom") {
		t.Errorf("output missing executor error: %q", output.String())
	}
	if n := strings.Count(output.String(), "test> "); n != 4 {
		t.Errorf("prompts = %d, want 4", n)
	}
}

func TestREPL_Run_QuoteError(t *testing.T) {
	output := &bytes.Buffer{}
	r := New(func([]string) error {
		t.Error("executor called for unbalanced line")
		return nil
	}, WithIO(strings.NewReader("echo \"x\nexit\n"), output))

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(output.String(), "unbalanced quotes") {
		t.Errorf("output = %q", output.String())
	}
}

func TestREPL_Run_Help(t *testing.T) {
	output := &bytes.Buffer{}
	r := New(func([]string) error { return nil }, WithIO(strings.NewReader("help\nexit\n"), output))

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(output.String(), "config get") {
		t.Errorf("help output = %q", output.String())
	}
}

func TestREPL_Run_PersistsHistory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")

	r := New(func([]string) error { return nil },
		WithIO(strings.NewReader("ping\nget k\nexit\n"), &bytes.Buffer{}),
		WithHistory(NewHistory(file)))
	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	h := NewHistory(file)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if h.Get(0) != "exit" || h.Get(1) != "get k" || h.Get(2) != "ping" {
		t.Errorf("history = %q, %q, %q", h.Get(0), h.Get(1), h.Get(2))
	}
}
