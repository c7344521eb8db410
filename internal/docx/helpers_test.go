package docx_test

import (
	"testing"

	"github.com/alnah/go-docx2pdf/internal/docxtest"
)

const (
	wordNS       = docxtest.Namespaces
	packageRels  = docxtest.PackageRels
	contentTypes = docxtest.ContentTypes
)

func document(body string) string       { return docxtest.Document(body) }
func documentRels(entries string) string { return docxtest.Rels(entries) }
func styles(entries string) string       { return docxtest.Styles(entries) }

func buildPackage(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	return docxtest.Zip(t, parts)
}

// buildDOCX creates a minimal package around body content without styles.
func buildDOCX(t *testing.T, body string, extra map[string]string) []byte {
	t.Helper()

	parts := map[string]string{
		"[Content_Types].xml": contentTypes,
		"_rels/.rels":         packageRels,
		"word/document.xml":   document(body),
	}
	for name, content := range extra {
		parts[name] = content
	}
	return buildPackage(t, parts)
}
