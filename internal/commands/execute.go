package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add   func(AddArgs) (Result, error)
	Done  func(DoneArgs) (Result, error)
	Del   func(DelArgs) (Result, error)
	Due   func(DueArgs) (Result, error)
	Show  func(ShowArgs) (Result, error)
	Note  func(NoteArgs) (Result, error)
	Theme func(ThemeArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeDel:
		if handlers.Del == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "del handler not configured"}
		}
		return handlers.Del(*cmd.Del)
	case TypeDue:
		if handlers.Due == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "due handler not configured"}
		}
		return handlers.Due(*cmd.Due)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	case TypeNote:
		if handlers.Note == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "note handler not configured"}
		}
		return handlers.Note(*cmd.Note)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "theme handler not configured"}
		}
		return handlers.Theme(*cmd.Theme)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
