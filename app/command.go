package app

import "fmt"

// CommandKind selects what the render thread does with a Command.
type CommandKind uint8

const (
	CmdPrint CommandKind = iota + 1
	CmdClear
	CmdRotate
	CmdBacklight
	CmdPower
	CmdReplay
)

func (k CommandKind) String() string {
	switch k {
	case CmdPrint:
		return "print"
	case CmdClear:
		return "clear"
	case CmdRotate:
		return "rotate"
	case CmdBacklight:
		return "backlight"
	case CmdPower:
		return "power"
	case CmdReplay:
		return "replay"
	default:
		return fmt.Sprintf("CommandKind(%d)", uint8(k))
	}
}

// Command is one unit of work for the render thread.
type Command struct {
	Kind CommandKind
	Text string
}

// Print returns a command that appends a line to the terminal.
func Print(format string, args ...any) Command {
	return Command{Kind: CmdPrint, Text: fmt.Sprintf(format, args...)}
}
