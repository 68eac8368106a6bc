package redisserver

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/yndnr/respkv/internal/core/domain"
	"github.com/yndnr/respkv/pkg/resp"
)

// Decoder modes selectable by configuration.
const (
	DecoderRESP   = "resp"
	DecoderTokens = "tokens"
)

// Decoder reads one command from a connection.
//
// Decode returns io.EOF when the peer closed the connection before sending
// any byte of a new frame. Errors matching domain.ErrMalformedFrame leave the
// reader usable; domain.ErrProtocolLimit and I/O errors do not.
type Decoder interface {
	Decode(r *bufio.Reader) (domain.Command, error)
}

// NewDecoder returns the decoder for mode. An empty mode selects DecoderRESP.
func NewDecoder(mode string) (Decoder, error) {
	switch strings.ToLower(mode) {
	case "", DecoderRESP:
		return FrameDecoder{}, nil
	case DecoderTokens:
		return TokenDecoder{}, nil
	default:
		return nil, fmt.Errorf("unknown decoder %q", mode)
	}
}

// FrameDecoder parses RESP arrays honoring bulk length prefixes, so
// arguments may contain whitespace or arbitrary bytes. Inline commands
// ("PING\r\n") are accepted too.
type FrameDecoder struct{}

// Decode implements Decoder.
func (FrameDecoder) Decode(r *bufio.Reader) (domain.Command, error) {
	args, err := resp.ReadFrame(r)
	if err != nil {
		switch {
		case errors.Is(err, resp.ErrLimitExceeded):
			return domain.Command{}, domain.ErrProtocolLimit.WithCause(err)
		case errors.Is(err, resp.ErrProtocol):
			return domain.Command{}, domain.ErrMalformedFrame.WithCause(err)
		}
		return domain.Command{}, err
	}
	if len(args) == 0 {
		return domain.Command{}, domain.ErrMalformedFrame.WithDetails("empty frame")
	}

	rest := make([]string, len(args)-1)
	for i, a := range args[1:] {
		rest[i] = string(a)
	}
	return domain.NewCommand(string(args[0]), rest), nil
}

// TokenDecoder splits whatever bytes are buffered on whitespace and reads
// token 2 as the command name and tokens 4, 6, 8, ... as arguments, skipping
// the array and length headers. Arguments therefore cannot contain
// whitespace, and frames arriving in the same read are merged into one
// command.
type TokenDecoder struct{}

// Decode implements Decoder.
func (TokenDecoder) Decode(r *bufio.Reader) (domain.Command, error) {
	// Block until the next chunk arrives.
	if _, err := r.Peek(1); err != nil {
		return domain.Command{}, err
	}

	chunk := make([]byte, r.Buffered())
	if _, err := r.Read(chunk); err != nil {
		return domain.Command{}, err
	}
	return ParseTokens(string(chunk))
}

// ParseTokens applies the token framing to one chunk of input.
func ParseTokens(chunk string) (domain.Command, error) {
	parts := strings.Fields(chunk)
	if len(parts) < 3 {
		return domain.Command{}, domain.ErrMalformedFrame.WithDetails(fmt.Sprintf("%d tokens", len(parts)))
	}

	var args []string
	for i := 4; i < len(parts); i += 2 {
		args = append(args, parts[i])
	}
	return domain.NewCommand(parts[2], args), nil
}
