package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/plandeck/plandeck/internal/scheduler"
)

// Notifier delivers a fired notice to the user.
type Notifier interface {
	Send(n scheduler.Notice) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(scheduler.Notice) error { return nil }

// ExecNotifier shells out to the platform notification tool.
type ExecNotifier struct{}

func (ExecNotifier) Send(n scheduler.Notice) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
