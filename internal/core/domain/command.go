package domain

import "strings"

// CommandKind identifies a supported command.
type CommandKind uint8

const (
	KindUnknown CommandKind = iota
	KindPing
	KindEcho
	KindSet
	KindGet
	KindConfig
)

var commandKinds = map[string]CommandKind{
	"ping":   KindPing,
	"echo":   KindEcho,
	"set":    KindSet,
	"get":    KindGet,
	"config": KindConfig,
}

// String returns the lower-case command name for k.
func (k CommandKind) String() string {
	switch k {
	case KindPing:
		return "ping"
	case KindEcho:
		return "echo"
	case KindSet:
		return "set"
	case KindGet:
		return "get"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Command is one decoded request.
type Command struct {
	Kind CommandKind
	// Name is the lower-cased command name as received.
	Name string
	Args []string
}

// NewCommand builds a Command from a raw name and its arguments.
func NewCommand(name string, args []string) Command {
	lower := strings.ToLower(name)
	return Command{
		Kind: commandKinds[lower],
		Name: lower,
		Args: args,
	}
}
