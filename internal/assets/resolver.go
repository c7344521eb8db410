package assets

import "errors"

// AssetResolver looks an asset up in a chain of loaders: the custom
// directory first when one is configured, then the embedded assets.
// Only not-found errors fall through to the next loader.
type AssetResolver struct {
	chain []AssetLoader
}

// NewAssetResolver builds the chain. An empty customBasePath uses the
// embedded assets only; an invalid one is an error.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.chain = append(r.chain, custom)
	}
	r.chain = append(r.chain, builtin)
	return r, nil
}

// LoadStyle returns the first styles/{name}.css found in the chain.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(AssetLoader.LoadStyle, name)
}

// LoadTemplate returns the first templates/{name}.html found in the chain.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(AssetLoader.LoadTemplate, name)
}

func (r *AssetResolver) first(load func(AssetLoader, string) (string, error), name string) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		if content, err = load(l, name); err == nil || !isNotFoundError(err) {
			return content, err
		}
	}
	return "", err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

// HasCustomLoader reports whether a custom directory is in the chain.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
