// Package hostinfo identifies the machine an event originates from.
package hostinfo

import (
	"os"
	"runtime"

	"github.com/denisbrodbeck/machineid"
)

// appID keys the hashed machine identifier so raw hardware IDs never
// leave the host.
const appID = "agent-monitor"

// Info describes the host an event was produced on.
type Info struct {
	Hostname  string
	Platform  string
	User      string
	MachineID string
}

// Collect gathers host identity from the execution environment. Every
// field degrades to a harmless value; collection never fails.
func Collect() Info {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	id, err := machineid.ProtectedID(appID)
	if err != nil {
		id = ""
	}

	return Info{
		Hostname:  hostname,
		Platform:  platformName(runtime.GOOS),
		User:      currentUser(),
		MachineID: id,
	}
}

// platformName maps a GOOS value to the platform label monitoring
// dashboards expect (Linux, Darwin, Windows).
func platformName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	default:
		return goos
	}
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	if user := os.Getenv("USERNAME"); user != "" {
		return user
	}
	return "unknown"
}
