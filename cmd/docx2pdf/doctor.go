package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docx2pdf/internal/config"
	"github.com/alnah/go-docx2pdf/internal/fileutil"
	"github.com/alnah/go-docx2pdf/internal/hints"
	"github.com/alnah/go-docx2pdf/internal/yamlutil"
)

// envContainer forces container detection.
const envContainer = "DOCX2PDF_CONTAINER"

// versionTimeout bounds the "chrome --version" probe.
const versionTimeout = 5 * time.Second

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string         `json:"status"`
	Chrome   chromeInfo     `json:"chrome"`
	Env      envInfo        `json:"environment"`
	System   systemInfo     `json:"system"`
	Config   *config.Config `json:"config,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Source  string `json:"source,omitempty"` // env var name or "lookup"
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	BrowserBin    string `json:"browser_bin,omitempty"`
	RodBrowserBin string `json:"rod_browser_bin,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// versionProbe runs "<bin> --version". Replaced in tests.
var versionProbe = func(ctx context.Context, bin string) (string, error) {
	out, err := exec.CommandContext(ctx, bin, "--version").Output() // #nosec G204 -- browser path from env or lookup
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// lookBrowser locates an installed Chrome. Replaced in tests.
var lookBrowser = launcher.LookPath

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	configName := fs.StringP("config", "c", "", "also check this config file")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor(env, *configName)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment, configName string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:            runtime.GOOS,
			Arch:          runtime.GOARCH,
			BrowserBin:    env.Getenv(hints.EnvBrowserBin),
			RodBrowserBin: env.Getenv(hints.EnvRodBrowserBin),
		},
	}

	checkChrome(result)
	checkEnvironment(result, env.Getenv)
	checkSystem(result)
	checkConfig(result, env, configName)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkChrome detects the browser the converter would launch.
func checkChrome(result *doctorResult) {
	path, source := result.Env.BrowserBin, hints.EnvBrowserBin
	if path == "" {
		path, source = result.Env.RodBrowserBin, hints.EnvRodBrowserBin
	}
	if path == "" {
		var found bool
		if path, found = lookBrowser(); !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set "+hints.EnvBrowserBin)
			return
		}
		source = "lookup"
	}

	if !fileutil.FileExists(path) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s (from %s)", path, source))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = path
	result.Chrome.Source = source

	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()
	version, err := versionProbe(ctx, path)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
		return
	}
	result.Chrome.Version = version
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && !result.Chrome.Found {
		result.Warnings = append(result.Warnings,
			"Container/CI detected: install chromium in the image, automatic download may be blocked")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv(envContainer) == "1" {
		return true, envContainer + "=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temporary HTML file can be written.
func checkSystem(result *doctorResult) {
	result.System.TempDir = fileutil.TempDir()
	_, cleanup, err := fileutil.WriteTempFile("<!doctype html>", "html")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", result.System.TempDir))
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// checkConfig resolves the effective configuration the same way convert does.
func checkConfig(result *doctorResult, env *Environment, configName string) {
	cfg, err := resolveConfig(nil, &convertFlags{config: configName}, env)
	if err != nil && !errors.Is(err, ErrNoInput) {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return
	}
	result.Config = cfg
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "docx2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s (%s)\n", r.Chrome.Path, r.Chrome.Source)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  [OK] Temp directory: %s (writable)\n", r.System.TempDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Temp directory: %s (not writable)\n", r.System.TempDir)
	}
	fmt.Fprintln(w)

	if r.Config != nil {
		fmt.Fprintln(w, "Effective config")
		if data, err := yamlutil.Marshal(r.Config); err == nil {
			for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
