package docx2pdf

import (
	"errors"
	"fmt"

	"github.com/alnah/go-docx2pdf/internal/assets"
)

// Asset name constants for the built-in style and page template.
const (
	// DefaultStyle is the name of the built-in CSS style.
	DefaultStyle = assets.DefaultStyleName

	// DocumentTemplate is the name of the HTML page template.
	DocumentTemplate = assets.DocumentTemplateName
)

// AssetLoader defines the contract for loading CSS styles and HTML templates.
// Implementations may load from a filesystem, embedded assets, a database.
//
// NewAssetLoader provides filesystem loading with fallback to embedded
// defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML page template by name (without .html
	// extension). The template receives .Title, .Style and .Body.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}.html for page templates
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound):
		return fmt.Errorf("%w: %v", ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return fmt.Errorf("%w: %v", ErrStyleNotFound, err)
	default:
		return err
	}
}
