package slack

import (
	"fmt"
	"strings"
)

type CommandType string

const (
	CmdStatus  CommandType = "status"
	CmdNext    CommandType = "next"
	CmdHistory CommandType = "history"
	CmdHelp    CommandType = "help"
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

func ParseCommand(text string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return &Command{Type: CmdHelp}, nil
	}

	cmd := &Command{
		Raw: text,
	}

	switch strings.ToLower(parts[0]) {
	case "status", "list", "ls":
		cmd.Type = CmdStatus
		if len(parts) > 1 {
			cmd.Args = parts[1:]
		}
	case "next":
		cmd.Type = CmdNext
	case "history":
		cmd.Type = CmdHistory
		if len(parts) > 1 {
			cmd.Args = parts[1:]
		}
	case "help":
		cmd.Type = CmdHelp
	default:
		return nil, fmt.Errorf("unknown command: %s", parts[0])
	}

	return cmd, nil
}

func GetHelpText() string {
	return `*Available Commands:*

• ` + "`/reminders status [days]`" + ` - List reminders with their days, next fire and last delivery (filter with ` + "`fri`" + `, ` + "`mon,tue`" + ` or ` + "`weekday-eve`" + `)
• ` + "`/reminders next`" + ` - Show the next reminder that will actually be posted
• ` + "`/reminders history [hours]`" + ` - Show deliveries of the last hours (default 24)
• ` + "`/reminders help`" + ` - Show this message`
}
