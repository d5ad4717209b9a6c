package version

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// InstallMethod represents how notecard was installed.
type InstallMethod string

const (
	InstallMethodHomebrew InstallMethod = "homebrew"
	InstallMethodGo       InstallMethod = "go"
	InstallMethodBinary   InstallMethod = "binary"
)

var (
	detectedMethod     InstallMethod
	detectedMethodOnce sync.Once
)

// DetectInstallMethod determines how notecard was installed.
// Checks Homebrew first, then Go bin directories, falls back to binary.
// Result is cached for the lifetime of the process.
func DetectInstallMethod() InstallMethod {
	detectedMethodOnce.Do(func() {
		detectedMethod = detectInstallMethod()
	})
	return detectedMethod
}

func detectInstallMethod() InstallMethod {
	exe, err := os.Executable()
	if err != nil {
		return InstallMethodBinary
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	switch {
	case isHomebrewPath(exe) && isHomebrewInstall():
		return InstallMethodHomebrew
	case isGoBin(exe, os.Getenv("GOBIN"), os.Getenv("GOPATH"), userHome()):
		return InstallMethodGo
	default:
		return InstallMethodBinary
	}
}

// isHomebrewInstall checks if notecard was installed via Homebrew.
func isHomebrewInstall() bool {
	if runtime.GOOS != "darwin" && runtime.GOOS != "linux" {
		return false
	}
	_, err := exec.LookPath("brew")
	if err != nil {
		return false
	}
	out, err := exec.Command("brew", "list", "--formula", "notecard").CombinedOutput()
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(out))) > 0
}

// isHomebrewPath reports whether exe lives under a Homebrew prefix.
func isHomebrewPath(exe string) bool {
	for _, prefix := range []string{"/opt/homebrew/", "/usr/local/Cellar/", "/home/linuxbrew/.linuxbrew/"} {
		if strings.HasPrefix(exe, prefix) {
			return true
		}
	}
	return false
}

// isGoBin reports whether exe sits in one of the Go bin directories.
func isGoBin(exe, gobin, gopath, home string) bool {
	dir := filepath.Dir(exe)
	if gobin != "" && dir == gobin {
		return true
	}
	if gopath != "" && dir == filepath.Join(gopath, "bin") {
		return true
	}
	if home != "" && dir == filepath.Join(home, "go", "bin") {
		return true
	}
	sep := string(filepath.Separator)
	return strings.Contains(exe, sep+"go"+sep+"bin"+sep)
}

func userHome() string {
	home, _ := os.UserHomeDir()
	return home
}
