package domain

import "testing"

func TestNewCommand(t *testing.T) {
	tests := []struct {
		name     string
		wantKind CommandKind
		wantName string
	}{
		{"PING", KindPing, "ping"},
		{"ping", KindPing, "ping"},
		{"Echo", KindEcho, "echo"},
		{"SET", KindSet, "set"},
		{"get", KindGet, "get"},
		{"CONFIG", KindConfig, "config"},
		{"DEL", KindUnknown, "del"},
		{"", KindUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCommand(tt.name, []string{"A", "b"})
			if cmd.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", cmd.Kind, tt.wantKind)
			}
			if cmd.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", cmd.Name, tt.wantName)
			}
			if len(cmd.Args) != 2 || cmd.Args[0] != "A" {
				t.Errorf("Args = %q, arguments must keep their case", cmd.Args)
			}
		})
	}
}

func TestCommandKind_String(t *testing.T) {
	for name, kind := range commandKinds {
		if kind.String() != name {
			t.Errorf("%v.String() = %q, want %q", kind, kind.String(), name)
		}
	}
	if KindUnknown.String() != "unknown" {
		t.Errorf("KindUnknown.String() = %q", KindUnknown.String())
	}
}
