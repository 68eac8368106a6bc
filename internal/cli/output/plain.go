package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/yndnr/respkv/pkg/resp"
)

// PlainFormatter formats replies the way redis-cli does on a terminal.
type PlainFormatter struct{}

// Format writes data followed by a newline.
func (f *PlainFormatter) Format(w io.Writer, data any) error {
	r, ok := data.(resp.Reply)
	if !ok {
		_, err := fmt.Fprintln(w, data)
		return err
	}

	switch r.Kind {
	case resp.KindSimpleString:
		_, err := fmt.Fprintln(w, r.Str)
		return err
	case resp.KindError:
		_, err := fmt.Fprintf(w, "(error) %s\n", r.Str)
		return err
	case resp.KindInteger:
		_, err := fmt.Fprintf(w, "(integer) %d\n", r.Int)
		return err
	case resp.KindBulkString:
		if r.Null {
			_, err := fmt.Fprintln(w, "(nil)")
			return err
		}
		_, err := fmt.Fprintln(w, strconv.Quote(r.Str))
		return err
	case resp.KindArray:
		if len(r.Items) == 0 {
			_, err := fmt.Fprintln(w, "(empty array)")
			return err
		}
		width := len(strconv.Itoa(len(r.Items)))
		for i, item := range r.Items {
			if _, err := fmt.Fprintf(w, "%*d) %s\n", width, i+1, strconv.Quote(item)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(w, "%v\n", r)
		return err
	}
}
