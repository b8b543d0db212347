package handlers

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// SystemOpener opens URLs with the platform's default handler.
type SystemOpener struct {
	goos string
}

// NewSystemOpener returns an opener for the running platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{goos: runtime.GOOS}
}

// Open runs the platform opener for url and waits for it to exit.
func (o *SystemOpener) Open(ctx context.Context, url string) error {
	name, args := o.command(url)
	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (o *SystemOpener) command(url string) (string, []string) {
	switch o.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
