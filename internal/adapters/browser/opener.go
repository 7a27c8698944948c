package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"mdshelf/internal/ports"
)

// ErrUnsupportedURL is returned for link destinations that are not web or mail links
var ErrUnsupportedURL = errors.New("unsupported link destination")

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// Opener implements ports.LinkOpener
type Opener struct {
	lookPath func(string) (string, error)
	goos     string
}

// Ensure Opener implements LinkOpener
var _ ports.LinkOpener = (*Opener)(nil)

// NewOpener creates a new link opener
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath, goos: runtime.GOOS}
}

// Open opens url in the user's browser without waiting for it to exit
func (o *Opener) Open(rawURL string) error {
	cmd, err := o.Command(rawURL)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	go cmd.Wait()
	return nil
}

// Command returns an exec.Cmd for opening url in a new browser context.
// Only the destination is passed, never the page it was linked from.
func (o *Opener) Command(rawURL string) (*exec.Cmd, error) {
	if err := Validate(rawURL); err != nil {
		return nil, err
	}

	browser := o.findBrowser()
	if len(browser) == 0 {
		return nil, fmt.Errorf("no browser found: set $BROWSER environment variable")
	}

	args := append(browser[1:], rawURL)
	return exec.Command(browser[0], args...), nil
}

// Validate checks that rawURL is an absolute http, https or mailto URL
func Validate(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
	if u.Scheme != "mailto" && u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrUnsupportedURL, rawURL)
	}
	return nil
}

// findBrowser returns the command used to open URLs
func (o *Opener) findBrowser() []string {
	// Check $BROWSER first
	if browser := os.Getenv("BROWSER"); browser != "" {
		// $BROWSER may list alternatives separated by ':'
		for _, candidate := range strings.Split(browser, ":") {
			fields := strings.Fields(candidate)
			if len(fields) == 0 {
				continue
			}
			if _, err := o.lookPath(fields[0]); err == nil {
				return fields
			}
		}
	}

	switch o.goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	}

	// Try common openers
	for _, opener := range []string{"xdg-open", "wslview", "sensible-browser"} {
		if path, err := o.lookPath(opener); err == nil {
			return []string{path}
		}
	}

	return nil
}
