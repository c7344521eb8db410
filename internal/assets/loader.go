package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// DocumentTemplateName is the name of the HTML page template that wraps the
// converted document body.
const DocumentTemplateName = "document"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	// ErrInvalidAssetName covers empty names and names with separators or dots.
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// AssetLoader loads CSS styles and HTML templates by bare name.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css.
	LoadStyle(name string) (string, error)
	// LoadTemplate returns templates/{name}.html.
	LoadTemplate(name string) (string, error)
}

// kind is one asset family: its directory, extension and not-found error.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// ValidateAssetName rejects names that could select a file outside the
// asset family's directory or change its extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// Loader reads assets from a file system laid out as styles/ and templates/.
type Loader struct {
	fsys fs.FS
	// contain vets a slash-separated asset path before it is opened.
	// nil for the embedded file system.
	contain func(rel string) error
}

// LoadStyle returns styles/{name}.css.
func (l *Loader) LoadStyle(name string) (string, error) {
	return l.load(styleKind, name)
}

// LoadTemplate returns templates/{name}.html.
func (l *Loader) LoadTemplate(name string) (string, error) {
	return l.load(templateKind, name)
}

func (l *Loader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	rel := path.Join(k.dir, name+k.ext)
	if l.contain != nil {
		if err := l.contain(rel); err != nil {
			return "", err
		}
	}

	data, err := fs.ReadFile(l.fsys, rel)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	default:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}

// Compile-time interface check.
var _ AssetLoader = (*Loader)(nil)
