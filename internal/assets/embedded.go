package assets

import "embed"

//go:embed styles templates
var embedded embed.FS

// NewEmbeddedLoader returns a Loader over the assets compiled into the binary.
func NewEmbeddedLoader() *Loader {
	return &Loader{fsys: embedded}
}

var builtin = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name.
func LoadStyle(name string) (string, error) {
	return builtin.LoadStyle(name)
}

// LoadTemplate loads a built-in HTML template by name.
func LoadTemplate(name string) (string, error) {
	return builtin.LoadTemplate(name)
}
