package models

import "strings"

// CommandType enumerates supported onionctl subcommands.
type CommandType string

const (
	CommandCalc    CommandType = "calc"
	CommandSave    CommandType = "save"
	CommandList    CommandType = "list"
	CommandDelete  CommandType = "delete"
	CommandClear   CommandType = "clear"
	CommandUnknown CommandType = "unknown"
)

// Command represents a parsed CLI invocation.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from command-line arguments. The first token selects the
// subcommand; Indonesian aliases used in the calculator UI are accepted too.
func ParseCommand(args []string) Command {
	cmd := Command{Raw: strings.Join(args, " ")}

	if len(args) == 0 {
		cmd.Type = CommandUnknown
		return cmd
	}

	head := strings.TrimPrefix(strings.TrimSpace(strings.ToLower(args[0])), "/")
	switch head {
	case string(CommandCalc), "hitung":
		cmd.Type = CommandCalc
	case string(CommandSave), "simpan":
		cmd.Type = CommandSave
	case string(CommandList), "riwayat", "history":
		cmd.Type = CommandList
	case string(CommandDelete), "hapus", "rm":
		cmd.Type = CommandDelete
	case string(CommandClear), "bersihkan":
		cmd.Type = CommandClear
	default:
		cmd.Type = CommandUnknown
	}

	if len(args) > 1 {
		cmd.Args = args[1:]
	}

	return cmd
}
