package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Protocol limits.
const (
	// MaxArrayLen limits the number of elements in a request array.
	MaxArrayLen = 1024

	// MaxBulkLen limits the size of a single bulk string (512KB).
	MaxBulkLen = 512 * 1024

	// MaxInlineLen limits inline command line length (4KB).
	MaxInlineLen = 4 * 1024

	// MaxReplyLineLen limits a '+' or '-' reply line read by ReadReply,
	// including its type byte and CRLF. A simple string may echo a full
	// bulk argument.
	MaxReplyLineLen = MaxBulkLen + 64
)

var (
	ErrProtocol      = errors.New("resp: protocol error")
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// ReadFrame reads one request frame from r and returns its elements.
//
// Array frames honor the bulk length prefixes, so elements may contain any
// byte. Lines not starting with '*' are treated as inline commands and split
// on whitespace. An empty array or blank inline line yields a nil slice.
func ReadFrame(r *bufio.Reader) ([][]byte, error) {
	b, err := r.Peek(1)
	if err != nil {
		return nil, err
	}

	if b[0] == '*' {
		return readArray(r)
	}

	line, err := readLine(r, MaxInlineLen)
	if err != nil {
		return nil, err
	}
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make([][]byte, 0, len(parts))
	for _, p := range parts {
		out = append(out, []byte(p))
	}
	return out, nil
}

func readArray(r *bufio.Reader) ([][]byte, error) {
	n, err := readLength(r, '*')
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}
	if n > MaxArrayLen {
		return nil, fmt.Errorf("%w: array length %d exceeds limit %d", ErrLimitExceeded, n, MaxArrayLen)
	}

	out := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		arg, err := readBulk(r)
		if err != nil {
			return nil, err
		}
		if arg == nil {
			arg = []byte{}
		}
		out = append(out, arg)
	}
	return out, nil
}

// readBulk reads "$<n>\r\n<n bytes>\r\n". A null bulk ("$-1") returns nil.
func readBulk(r *bufio.Reader) ([]byte, error) {
	n, err := readLength(r, '$')
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: invalid bulk length", ErrProtocol)
	}
	if n > MaxBulkLen {
		return nil, fmt.Errorf("%w: bulk length %d exceeds limit %d", ErrLimitExceeded, n, MaxBulkLen)
	}

	buf := make([]byte, n+2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	if !bytes.HasSuffix(buf, []byte("\r\n")) {
		return nil, fmt.Errorf("%w: invalid bulk terminator", ErrProtocol)
	}
	return buf[:n], nil
}

// readLength reads a "<prefix><int>\r\n" header line.
func readLength(r *bufio.Reader, prefix byte) (int, error) {
	line, err := readLine(r, 64)
	if err != nil {
		return 0, err
	}
	if len(line) < 2 || line[0] != prefix {
		return 0, fmt.Errorf("%w: expected '%c', got %q", ErrProtocol, prefix, line)
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid length %q", ErrProtocol, line[1:])
	}
	return n, nil
}

func readLine(r *bufio.Reader, maxLen int) (string, error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > maxLen {
				return "", fmt.Errorf("%w: line length exceeds limit %d", ErrLimitExceeded, maxLen)
			}
			continue
		}
		return "", err
	}

	if len(buf) > maxLen {
		return "", fmt.Errorf("%w: line length exceeds limit %d", ErrLimitExceeded, maxLen)
	}
	if len(buf) < 2 || !bytes.HasSuffix(buf, []byte("\r\n")) {
		return "", fmt.Errorf("%w: missing CRLF", ErrProtocol)
	}
	return string(buf[:len(buf)-2]), nil
}

// ReadReply reads one server reply from r.
func ReadReply(r *bufio.Reader) (Reply, error) {
	line, err := readLine(r, MaxReplyLineLen)
	if err != nil {
		return Reply{}, err
	}
	if line == "" {
		return Reply{}, fmt.Errorf("%w: empty reply line", ErrProtocol)
	}

	switch line[0] {
	case '+':
		return SimpleString(line[1:]), nil
	case '-':
		return Error(line[1:]), nil
	case ':':
		n, err := strconv.ParseInt(line[1:], 10, 64)
		if err != nil {
			return Reply{}, fmt.Errorf("%w: invalid integer %q", ErrProtocol, line[1:])
		}
		return Integer(n), nil
	case '$':
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			return Reply{}, fmt.Errorf("%w: invalid bulk length %q", ErrProtocol, line[1:])
		}
		if n < 0 {
			return NullBulk(), nil
		}
		if n > MaxBulkLen {
			return Reply{}, fmt.Errorf("%w: bulk length %d exceeds limit %d", ErrLimitExceeded, n, MaxBulkLen)
		}
		buf := make([]byte, n+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Reply{}, err
		}
		return Bulk(string(buf[:n])), nil
	case '*':
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			return Reply{}, fmt.Errorf("%w: invalid array length %q", ErrProtocol, line[1:])
		}
		if n < 0 {
			return NullBulk(), nil
		}
		if n > MaxArrayLen {
			return Reply{}, fmt.Errorf("%w: array length %d exceeds limit %d", ErrLimitExceeded, n, MaxArrayLen)
		}
		items := make([]string, 0, n)
		for i := 0; i < n; i++ {
			item, err := ReadReply(r)
			if err != nil {
				return Reply{}, err
			}
			items = append(items, item.Str)
		}
		return Array(items...), nil
	default:
		return Reply{}, fmt.Errorf("%w: unexpected reply type %q", ErrProtocol, line[0])
	}
}
