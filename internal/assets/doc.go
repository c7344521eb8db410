// Package assets provides the CSS styles and the HTML document template used
// to render DOCX content before PDF export.
//
// A Loader reads one file system laid out as
//
//	{root}/
//	├── styles/{name}.css        e.g. default.css
//	└── templates/{name}.html    e.g. document.html
//
// NewEmbeddedLoader serves the copies compiled into the binary and
// NewFilesystemLoader a directory on disk. AssetResolver chains a custom
// directory in front of the embedded assets, so a single file can be
// overridden.
//
// Names are bare: separators and dots are rejected, and files reached
// through symlinks must stay inside the custom directory.
package assets
