package resp

import (
	"bufio"
	"strconv"

	"github.com/tidwall/redcon"
)

// Kind identifies the variant held by a Reply.
type Kind uint8

const (
	KindSimpleString Kind = iota
	KindBulkString
	KindError
	KindArray
	// KindInteger is only produced by ReadReply; the server never sends it.
	KindInteger
)

func (k Kind) String() string {
	switch k {
	case KindSimpleString:
		return "simple"
	case KindBulkString:
		return "bulk"
	case KindError:
		return "error"
	case KindArray:
		return "array"
	case KindInteger:
		return "integer"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Reply is a single typed reply value.
//
// Str carries the text of simple strings, errors and non-null bulk strings.
// Null marks the null bulk string. Items holds array elements, each encoded
// as a bulk string.
type Reply struct {
	Kind  Kind
	Str   string
	Null  bool
	Items []string
	Int   int64
}

// SimpleString returns a "+<s>" reply.
func SimpleString(s string) Reply {
	return Reply{Kind: KindSimpleString, Str: s}
}

// Bulk returns a length-prefixed bulk string reply.
func Bulk(s string) Reply {
	return Reply{Kind: KindBulkString, Str: s}
}

// NullBulk returns the "$-1" null marker.
func NullBulk() Reply {
	return Reply{Kind: KindBulkString, Null: true}
}

// Error returns a "-<msg>" reply.
func Error(msg string) Reply {
	return Reply{Kind: KindError, Str: msg}
}

// Array returns an array of bulk strings.
func Array(items ...string) Reply {
	return Reply{Kind: KindArray, Items: items}
}

// Integer returns an integer reply.
func Integer(n int64) Reply {
	return Reply{Kind: KindInteger, Int: n}
}

// IsError reports whether the reply is an error reply.
func (r Reply) IsError() bool {
	return r.Kind == KindError
}

// Encode appends the wire form of r to dst and returns the extended slice.
//
// Simple strings and errors are line-framed, so any '\r' or '\n' in their
// text is replaced by a space ("a\r\nb" is sent as "+a  b\r\n"). Bulk
// strings and array items are length-prefixed and sent unchanged.
func Encode(dst []byte, r Reply) []byte {
	switch r.Kind {
	case KindSimpleString:
		return redcon.AppendString(dst, r.Str)
	case KindError:
		return redcon.AppendError(dst, r.Str)
	case KindBulkString:
		if r.Null {
			return redcon.AppendNull(dst)
		}
		return redcon.AppendBulkString(dst, r.Str)
	case KindArray:
		dst = redcon.AppendArray(dst, len(r.Items))
		for _, item := range r.Items {
			dst = redcon.AppendBulkString(dst, item)
		}
		return dst
	case KindInteger:
		return redcon.AppendInt(dst, r.Int)
	default:
		return redcon.AppendError(dst, "ERR unsupported reply")
	}
}

// WriteReply writes the wire form of r to w. The caller flushes w.
func WriteReply(w *bufio.Writer, r Reply) error {
	_, err := w.Write(Encode(nil, r))
	return err
}

// EncodeCommand encodes args as a request frame (array of bulk strings).
func EncodeCommand(args ...string) []byte {
	b := redcon.AppendArray(nil, len(args))
	for _, a := range args {
		b = redcon.AppendBulkString(b, a)
	}
	return b
}
