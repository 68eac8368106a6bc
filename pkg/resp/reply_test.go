package resp

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		reply Reply
		want  string
	}{
		{"simple string", SimpleString("PONG"), "+PONG\r\n"},
		{"ok", SimpleString("OK"), "+OK\r\n"},
		{"error", Error("ERR unknown command"), "-ERR unknown command\r\n"},
		{"bulk", Bulk("bar"), "$3\r\nbar\r\n"},
		{"empty bulk", Bulk(""), "$0\r\n\r\n"},
		{"multibyte bulk uses byte length", Bulk("héllo"), "$6\r\nhéllo\r\n"},
		{"null bulk", NullBulk(), "$-1\r\n"},
		{"array", Array("foo", "bar"), "*2\r\n$3\r\nfoo\r\n$3\r\nbar\r\n"},
		{"empty array", Array(), "*0\r\n"},
		{"integer", Integer(-2), ":-2\r\n"},
		{"simple string line breaks become spaces", SimpleString("a\r\nb"), "+a  b\r\n"},
		{"error line breaks become spaces", Error("ERR a\nb"), "-ERR a b\r\n"},
		{"bulk keeps line breaks", Bulk("a\r\nb"), "$4\r\na\r\nb\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Encode(nil, tt.reply))
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_Appends(t *testing.T) {
	b := Encode([]byte("+OK\r\n"), Bulk("x"))
	if string(b) != "+OK\r\n$1\r\nx\r\n" {
		t.Errorf("Encode() = %q", b)
	}
}

func TestWriteReply(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	if err := WriteReply(w, SimpleString("OK")); err != nil {
		t.Fatalf("WriteReply() error = %v", err)
	}
	if err := WriteReply(w, NullBulk()); err != nil {
		t.Fatalf("WriteReply() error = %v", err)
	}
	_ = w.Flush()

	if buf.String() != "+OK\r\n$-1\r\n" {
		t.Errorf("got %q, want +OK\\r\\n$-1\\r\\n", buf.String())
	}
}

func TestEncodeCommand(t *testing.T) {
	got := string(EncodeCommand("SET", "foo", "bar"))
	want := "*3\r\n$3\r\nSET\r\n$3\r\nfoo\r\n$3\r\nbar\r\n"
	if got != want {
		t.Errorf("EncodeCommand() = %q, want %q", got, want)
	}

	frame, err := ReadFrame(bufio.NewReader(strings.NewReader(got)))
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if len(frame) != 3 || string(frame[2]) != "bar" {
		t.Errorf("ReadFrame(EncodeCommand()) = %q", frame)
	}
}

func TestKindString(t *testing.T) {
	if KindBulkString.String() != "bulk" {
		t.Errorf("KindBulkString.String() = %q", KindBulkString.String())
	}
	if Kind(99).String() != "kind(99)" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}
