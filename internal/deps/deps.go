// Package deps checks the availability of the external binaries the
// conversion pipeline shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Binaries holds the configured command names for the external tools.
type Binaries struct {
	FFmpeg  string
	FFprobe string
	MP3splt string
}

// ForConversion returns the requirements for a conversion run. mp3splt is
// only needed when the mp3 splitter will actually run: mp3 output that is
// neither metadata-only, cover-only, nor single-file.
func ForConversion(bin Binaries, formatName string, splitting bool) []Requirement {
	reqs := []Requirement{
		{Name: "FFmpeg", Command: bin.FFmpeg, Description: "decrypts, transcodes, and splits non-mp3 formats"},
		{Name: "FFprobe", Command: bin.FFprobe, Description: "extracts chapters and tags"},
	}
	if formatName == "mp3" {
		reqs = append(reqs, Requirement{
			Name:        "mp3splt",
			Command:     bin.MP3splt,
			Description: "lossless mp3 chapter splitting",
			Optional:    !splitting,
		})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing returns the names of required dependencies that are unavailable.
func Missing(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
