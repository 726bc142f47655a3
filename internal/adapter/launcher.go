package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// candidatePlayers lists players that can stream YouTube URLs directly, in
// preference order per platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv"},
	"linux":   {"mpv", "celluloid", "vlc"},
	"windows": {"mpv", "vlc"},
}

// Launcher opens trailer URLs in an external player or the system browser
type Launcher struct {
	command string   // configured player command, empty for auto-detect
	args    []string // additional arguments for the player
	logger  *slog.Logger

	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// startDetached starts a command without waiting for it to exit
func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Launch opens url, trying the configured player, then known players, then
// the system default handler
func (l *Launcher) Launch(url string) error {
	if url == "" {
		return fmt.Errorf("nothing to open")
	}

	// Tier 1: User configured a specific player
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		l.logger.Info("launching configured player", "command", l.command, "args", args)
		return l.start(l.command, args...)
	}

	// Tier 2: First installed candidate
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"]
	}
	for _, name := range candidates {
		if _, err := l.lookPath(name); err != nil {
			l.logger.Debug("player not installed", "player", name)
			continue
		}
		if err := l.start(name, url); err == nil {
			l.logger.Info("launched with detected player", "player", name)
			return nil
		}
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	l.logger.Info("no candidate players found, using system default")
	return l.launchDefault(url)
}

// launchDefault opens the URL using the system default handler
func (l *Launcher) launchDefault(url string) error {
	l.logger.Info("launching with system default", "os", runtime.GOOS, "url", url)

	switch runtime.GOOS {
	case "darwin":
		return l.start("open", url)
	case "windows":
		return l.start("cmd", "/c", "start", "", url)
	default:
		return l.start("xdg-open", url)
	}
}
