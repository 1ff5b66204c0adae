// Package install makes the app launchable from the desktop application
// menu, behind an opaque prompt capability.
package install

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const entryName = "tally.desktop"

// Outcome is the result of triggering an install prompt.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeDismissed Outcome = "dismissed"
)

// Prompt is the install capability handed to the interaction layer. It
// stays opaque: callers check availability and trigger it, nothing more.
type Prompt interface {
	Available() bool
	Trigger() (Outcome, error)
}

// DesktopPrompt installs an XDG desktop entry for the running binary so
// the app appears in the application menu.
type DesktopPrompt struct {
	execPath func() (string, error)
}

// NewDesktopPrompt builds the prompt for the current executable.
func NewDesktopPrompt() *DesktopPrompt {
	return &DesktopPrompt{execPath: os.Executable}
}

// Available reports whether an install could succeed and has not already
// happened.
func (p *DesktopPrompt) Available() bool {
	if Installed() {
		return false
	}
	_, err := EntryPath()
	return err == nil
}

// Trigger performs the install. The returned outcome is accepted on
// success; declining happens before Trigger is ever called.
func (p *DesktopPrompt) Trigger() (Outcome, error) {
	binaryPath, err := p.execPath()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	binaryPath, err = filepath.Abs(binaryPath)
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	if err := Install(binaryPath); err != nil {
		return "", err
	}
	return OutcomeAccepted, nil
}

// EntryContents returns the desktop entry for the given binary path.
func EntryContents(binaryPath string) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=Tally
GenericName=Event Tally
Comment=Record timestamped events with one keystroke
Exec=%s
Terminal=true
Categories=Utility;
Keywords=tally;log;tracker;
`, binaryPath)
}

// EntryPath returns the path of the desktop entry file.
func EntryPath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "applications", entryName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "applications", entryName), nil
}

// Install writes the desktop entry and refreshes the menu database.
func Install(binaryPath string) error {
	entryPath, err := EntryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(entryPath), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	if err := os.WriteFile(entryPath, []byte(EntryContents(binaryPath)), 0o644); err != nil {
		return fmt.Errorf("cannot write desktop entry: %w", err)
	}
	// Menu refresh is best effort; most environments pick the entry up
	// without it.
	_ = exec.Command("update-desktop-database", filepath.Dir(entryPath)).Run()
	return nil
}

// Uninstall removes the desktop entry. A missing entry is not an error.
func Uninstall() error {
	entryPath, err := EntryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot remove desktop entry: %w", err)
	}
	_ = exec.Command("update-desktop-database", filepath.Dir(entryPath)).Run()
	return nil
}

// Installed reports whether the desktop entry exists.
func Installed() bool {
	entryPath, err := EntryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(entryPath)
	return err == nil
}

// Status returns a human-readable install state.
func Status() string {
	entryPath, err := EntryPath()
	if err != nil {
		return "desktop entry: unavailable (" + err.Error() + ")"
	}
	if Installed() {
		return "desktop entry: installed (" + entryPath + ")"
	}
	return "desktop entry: not installed"
}
