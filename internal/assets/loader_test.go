package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"default", false},
		{"my-style", false},
		{"report_v2", false},
		{"Corporate", false},
		{"", true},
		{"a/b", true},
		{`a\b`, true},
		{"..", true},
		{"../secret", true},
		{"style.css", true},
		{".hidden", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.name)
			if tt.wantErr != errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Embedded assets
// ---------------------------------------------------------------------------

func TestLoadStyle_Default(t *testing.T) {
	t.Parallel()

	css, err := LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle(%q) error = %v", DefaultStyleName, err)
	}

	for _, want := range []string{
		"font-family: Arial, sans-serif",
		"line-height: 1.5",
		"margin: 40px",
		"table.docx-table",
		"border-collapse: collapse",
		"border: 1px solid #ddd",
		"padding: 8px",
		"h1 { font-size: 24pt; }",
		"h2 { font-size: 18pt; }",
		"h3 { font-size: 14pt; }",
		"max-width: 100%",
		"@page",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("default style should contain %q", want)
		}
	}
}

func TestLoadTemplate_Document(t *testing.T) {
	t.Parallel()

	tmpl, err := LoadTemplate(DocumentTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) error = %v", DocumentTemplateName, err)
	}
	if !strings.HasPrefix(tmpl, "<!DOCTYPE html>") {
		t.Errorf("document template should start with a doctype, got %.40q", tmpl)
	}
	for _, want := range []string{`<meta charset="UTF-8">`, "{{.Title}}", "{{.Style}}", "{{.Body}}"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("document template should contain %q", want)
		}
	}
}

func TestEmbeddedLoader_Errors(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name    string
		load    func(string) (string, error)
		arg     string
		wantErr error
	}{
		{"missing style", loader.LoadStyle, "nonexistent", ErrStyleNotFound},
		{"missing template", loader.LoadTemplate, "cover", ErrTemplateNotFound},
		{"style traversal", loader.LoadStyle, "../secret", ErrInvalidAssetName},
		{"template separator", loader.LoadTemplate, "a/b", ErrInvalidAssetName},
		{"empty", loader.LoadStyle, "", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tt.load(tt.arg); !errors.Is(err, tt.wantErr) {
				t.Errorf("load(%q) error = %v, want %v", tt.arg, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Filesystem assets
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader_InvalidBasePath(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	for name, base := range map[string]string{
		"empty":     "",
		"missing":   filepath.Join(t.TempDir(), "nope"),
		"not a dir": file,
	} {
		if _, err := NewFilesystemLoader(base); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("%s: NewFilesystemLoader(%q) error = %v, want ErrInvalidBasePath", name, base, err)
		}
	}
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "corporate.css", "body { color: #333; }")
	writeAsset(t, dir, "templates", "memo.html", "<main>{{.Body}}</main>")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	if css, err := loader.LoadStyle("corporate"); err != nil || css != "body { color: #333; }" {
		t.Errorf("LoadStyle() = %q, %v", css, err)
	}
	if tmpl, err := loader.LoadTemplate("memo"); err != nil || tmpl != "<main>{{.Body}}</main>" {
		t.Errorf("LoadTemplate() = %q, %v", tmpl, err)
	}
	if _, err := loader.LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(missing) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
	if _, err := loader.LoadStyle("corporate.css"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(corporate.css) error = %v, want ErrInvalidAssetName", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	secret := filepath.Join(t.TempDir(), "secret.css")
	if err := os.WriteFile(secret, []byte("secret"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(secret, filepath.Join(dir, "styles", "evil.css")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadStyle("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle(evil) error = %v, want ErrPathTraversal", err)
	}
}

func TestFilesystemLoader_ReadError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// A directory where a file is expected cannot be read as one.
	if err := os.MkdirAll(filepath.Join(dir, "styles", "broken.css"), 0o755); err != nil {
		t.Fatal(err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadStyle("broken"); !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStyle(broken) error = %v, want ErrAssetRead", err)
	}
}
