// Package docx reads Office Open XML word-processing documents into a
// structural model suitable for HTML rendering.
//
// Read opens the package from memory, locates the main document part through
// the package relationships, and resolves paragraph and character styles,
// list numbering, hyperlinks and embedded images against the supporting parts
// (styles.xml, numbering.xml, relationships, core properties).
//
// The model keeps only what affects rendering. Tracked deletions, page and
// column breaks, field instructions and drawing geometry are discarded.
// Tracked insertions, content controls and smart tags are unwrapped.
package docx
