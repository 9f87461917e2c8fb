// Package clipboard provides platform-specific clipboard operations.
package clipboard

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bryan-cox/taskboard/internal/errors"
)

// Runner runs name with args, feeding stdin to it.
type Runner func(ctx context.Context, stdin string, name string, args ...string) error

// Copier copies rich text to the system clipboard through whichever helper
// tool the platform offers.
type Copier struct {
	GOOS     string
	LookPath func(string) (string, error)
	Run      Runner
}

// New returns a Copier for the running platform.
func New() *Copier {
	return &Copier{GOOS: runtime.GOOS, LookPath: exec.LookPath, Run: runCommand}
}

// CopyHTML copies htmlContent as HTML, falling back to plain text where the
// platform tools cannot set an HTML flavour.
func (c *Copier) CopyHTML(ctx context.Context, htmlContent string) error {
	switch c.GOOS {
	case "linux", "freebsd", "openbsd":
		return c.copyHTMLUnix(ctx, htmlContent)
	case "darwin":
		return c.copyHTMLMacOS(ctx, htmlContent)
	case "windows":
		return c.copyHTMLWindows(ctx, htmlContent)
	default:
		return fmt.Errorf("unsupported platform: %s", c.GOOS)
	}
}

var (
	unixHTMLTools = [][]string{
		{"wl-copy", "--type", "text/html"},
		{"xclip", "-selection", "clipboard", "-t", "text/html"},
		{"xsel", "--clipboard", "--input", "--type", "text/html"},
	}
	unixTextTools = [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
)

func (c *Copier) copyHTMLUnix(ctx context.Context, htmlContent string) error {
	logger := zerolog.Ctx(ctx)
	for _, tools := range [][][]string{unixHTMLTools, unixTextTools} {
		for _, tool := range tools {
			if !c.isCommandAvailable(tool[0]) {
				continue
			}
			err := c.Run(ctx, htmlContent, tool[0], tool[1:]...)
			if err == nil {
				logger.Debug().Strs("tool", tool).Msg("copied report to clipboard")
				return nil
			}
			logger.Debug().Err(err).Strs("tool", tool).Msg("clipboard tool failed")
		}
	}
	return fmt.Errorf("no suitable clipboard tool found (tried: wl-copy, xclip, xsel)")
}

func (c *Copier) copyHTMLMacOS(ctx context.Context, htmlContent string) error {
	// osascript takes the HTML as hex so nothing needs quoting.
	script := fmt.Sprintf(`set the clipboard to «data HTML%X»`, []byte(htmlContent))
	return errors.Wrap(c.Run(ctx, "", "osascript", "-e", script), "osascript failed")
}

func (c *Copier) copyHTMLWindows(ctx context.Context, htmlContent string) error {
	script := `Add-Type -AssemblyName System.Windows.Forms; ` +
		`[System.Windows.Forms.Clipboard]::SetText([Console]::In.ReadToEnd(), [System.Windows.Forms.TextDataFormat]::Html)`
	return errors.Wrap(c.Run(ctx, htmlContent, "powershell", "-NoProfile", "-STA", "-Command", script), "powershell failed")
}

func (c *Copier) isCommandAvailable(name string) bool {
	_, err := c.LookPath(name)
	return err == nil
}

func runCommand(ctx context.Context, stdin string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}
