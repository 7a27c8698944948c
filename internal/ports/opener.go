package ports

import "os/exec"

// LinkOpener defines the interface for opening link destinations outside the terminal
type LinkOpener interface {
	// Open opens url in a new browser context
	Open(url string) error

	// Command returns an exec.Cmd for opening url.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(url string) (*exec.Cmd, error)
}
