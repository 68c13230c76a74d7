// Package browser opens web pages in an external program.
package browser

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
)

// ErrNoURL is returned when there is nothing to open
var ErrNoURL = errors.New("no url to open")

// Opener opens URLs in the configured browser or the system default
type Opener struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments placed before the URL
	goos    string
	start   func(name string, args ...string) error
	logger  *slog.Logger
}

// NewOpener creates an Opener. An empty command uses the system default
// handler (open, xdg-open or start).
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		start:   startDetached,
		logger:  logger,
	}
}

// Open launches url without waiting for the browser to exit
func (o *Opener) Open(url string) error {
	if url == "" {
		return ErrNoURL
	}

	name, args := o.Command(url)
	o.logger.Info("opening url", "command", name, "args", args)
	if err := o.start(name, args...); err != nil {
		o.logger.Error("failed to open url", "command", name, "url", url, "error", err)
		return err
	}
	return nil
}

// Command returns the program and arguments Open would run for url
func (o *Opener) Command(url string) (string, []string) {
	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		return o.command, args
	}

	switch o.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}

func startDetached(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}
