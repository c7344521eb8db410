// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-docx2pdf/internal/fileutil"
)

// Environment variables naming a browser binary, in lookup order.
const (
	EnvBrowserBin    = "DOCX2PDF_BROWSER_BIN"
	EnvRodBrowserBin = "ROD_BROWSER_BIN"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a CI environment variable is set.
func InCI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for browser launch or connection errors.
func ForBrowserConnect() string {
	var hints []string

	if os.Getenv(EnvBrowserBin) == "" && os.Getenv(EnvRodBrowserBin) == "" {
		hints = append(hints, "set "+EnvBrowserBin+" or use --browser-bin to point at Chrome/Chromium")
	}
	if InCI() || IsInContainer() {
		hints = append(hints, "install chromium in the image; automatic download may be blocked")
	}
	hints = append(hints, "run 'docx2pdf doctor' to check the environment")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow documents.
func ForTimeout() string {
	return format("for large documents or slow linked images, use --timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), ".config/go-docx2pdf") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForInputNotFound returns a hint for a missing DOCX input.
func ForInputNotFound() string {
	return format("pass the input path as the first argument or set input.path in the config")
}

// ForInvalidDOCX returns a hint for input that is not a DOCX package.
func ForInvalidDOCX() string {
	return format("only .docx (Office Open XML) files are supported; re-save legacy .doc files as .docx")
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForStyleMap returns a hint for style-map rule syntax errors.
func ForStyleMap() string {
	return format("rules look like: p[style-name='Heading 1'] => h1:fresh")
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
