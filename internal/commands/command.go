package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd   Type = "add"
	TypeDone  Type = "done"
	TypeDel   Type = "del"
	TypeDue   Type = "due"
	TypeShow  Type = "show"
	TypeNote  Type = "note"
	TypeTheme Type = "theme"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs carries a new activity. Inline modifiers are pulled out of
// the title: due:DD/MM/YYYY, at:HH:MM, prio:low|medium|high.
type AddArgs struct {
	Title    string
	DueDate  string
	DueTime  string
	Priority string
}

type DoneArgs struct {
	Target string
}

type DelArgs struct {
	Target string
}

type DueArgs struct {
	Target string
	Date   string
	Time   string
}

type ShowArgs struct {
	View string
}

type NoteArgs struct {
	Source string
}

type ThemeArgs struct {
	Name string
}

type Command struct {
	Type  Type
	Raw   string
	Add   *AddArgs
	Done  *DoneArgs
	Del   *DelArgs
	Due   *DueArgs
	Show  *ShowArgs
	Note  *NoteArgs
	Theme *ThemeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeDel:
		return parseDel(input, args)
	case TypeDue:
		return parseDue(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeNote:
		return parseNote(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	add := AddArgs{}
	var title []string
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			add.DueDate = arg[len("due:"):]
		case strings.HasPrefix(lower, "at:"):
			add.DueTime = arg[len("at:"):]
		case strings.HasPrefix(lower, "prio:"):
			add.Priority = lower[len("prio:"):]
		default:
			title = append(title, arg)
		}
	}
	add.Title = strings.TrimSpace(strings.Join(title, " "))
	if add.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	if add.DueTime != "" && add.DueDate == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "at: needs a due: date"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &add}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires one target"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: args[0]}}, nil
}

func parseDel(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "del requires one target"}
	}
	return Command{Type: TypeDel, Raw: raw, Del: &DelArgs{Target: args[0]}}, nil
}

func parseDue(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "due requires target and date"}
	}
	due := DueArgs{Target: args[0], Date: args[1]}
	if len(args) > 2 {
		due.Time = args[2]
	}
	return Command{Type: TypeDue, Raw: raw, Due: &due}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a view"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{View: strings.ToLower(args[0])}}, nil
}

func parseNote(raw string, args []string) (Command, error) {
	source := strings.TrimSpace(strings.Join(args, " "))
	if source == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "note requires text"}
	}
	return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{Source: source}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme requires dark or light"}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Name: strings.ToLower(args[0])}}, nil
}
