package domain

import "fmt"

// CommandKind selects what a model-checker command does.
type CommandKind int

const (
	// CmdPush appends one character.
	CmdPush CommandKind = iota
	// CmdPushStr appends a string.
	CmdPushStr
	// CmdRemove removes the character at a position.
	CmdRemove
	// CmdClone takes a clone and remembers its expected content.
	CmdClone
)

func (k CommandKind) String() string {
	switch k {
	case CmdPush:
		return "push"
	case CmdPushStr:
		return "push_str"
	case CmdRemove:
		return "remove"
	case CmdClone:
		return "clone"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is one step of a model-checker run.
// Index is a byte offset, reduced modulo the text length when applied.
type Command struct {
	Kind  CommandKind
	Rune  rune
	Text  string
	Index int
}

func (c Command) String() string {
	switch c.Kind {
	case CmdPush:
		return fmt.Sprintf("push(%q)", c.Rune)
	case CmdPushStr:
		return fmt.Sprintf("push_str(%q)", c.Text)
	case CmdRemove:
		return fmt.Sprintf("remove(%d)", c.Index)
	default:
		return c.Kind.String()
	}
}

// CheckReport summarises a model-checker run.
type CheckReport struct {
	Seeds    int
	Commands int
	Clones   int
	Removals int
}
