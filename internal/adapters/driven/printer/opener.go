package printer

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens a local file in the user's default application.
type Opener func(path string) error

// OpenDefault opens path with the platform launcher.
func OpenDefault(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
