package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// MaxPartSize caps the decompressed size of a single package part.
const MaxPartSize = 64 << 20

const (
	relTypeOfficeDocument = "/officeDocument"
	relTypeStyles         = "/styles"
	relTypeNumbering      = "/numbering"
	relTypeCoreProperties = "/core-properties"
	relTypeFootnotes      = "/footnotes"
	relTypeEndnotes       = "/endnotes"

	defaultMainPart = "word/document.xml"
	defaultCorePart = "docProps/core.xml"
)

// relationship is one entry of a .rels part.
type relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// opcPackage gives access to the parts of a ZIP container.
type opcPackage struct {
	files map[string]*zip.File
}

func openPackage(data []byte) (*opcPackage, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDOCX, err)
	}

	p := &opcPackage{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		p.files[strings.ToLower(f.Name)] = f
	}
	return p, nil
}

// has reports whether the part exists. Part names are case-insensitive.
func (p *opcPackage) has(name string) bool {
	_, ok := p.files[partKey(name)]
	return ok
}

// read returns the decompressed content of a part.
func (p *opcPackage) read(name string) ([]byte, error) {
	f, ok := p.files[partKey(name)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	if f.UncompressedSize64 > MaxPartSize {
		return nil, fmt.Errorf("%w: %s", ErrPartTooLarge, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotDOCX, name, err)
	}
	defer func() { _ = rc.Close() }()

	// Declared sizes are untrusted; bound the actual read as well.
	data, err := io.ReadAll(io.LimitReader(rc, MaxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotDOCX, name, err)
	}
	if len(data) > MaxPartSize {
		return nil, fmt.Errorf("%w: %s", ErrPartTooLarge, name)
	}
	return data, nil
}

// readXML reads and decodes a part.
func (p *opcPackage) readXML(name string) (*node, error) {
	data, err := p.read(name)
	if err != nil {
		return nil, err
	}
	root, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return root, nil
}

// relationships reads the .rels part that belongs to source. A missing
// relationships part yields an empty map.
func (p *opcPackage) relationships(source string) (map[string]relationship, error) {
	rels := make(map[string]relationship)
	name := relsPartName(source)
	if !p.has(name) {
		return rels, nil
	}

	root, err := p.readXML(name)
	if err != nil {
		return nil, err
	}
	base := path.Dir(source)
	for _, r := range root.childrenNamed("Relationship") {
		rel := relationship{
			ID:       r.attr("Id"),
			Type:     r.attr("Type"),
			External: strings.EqualFold(r.attr("TargetMode"), "External"),
		}
		if rel.External {
			rel.Target = r.attr("Target")
		} else {
			rel.Target = resolvePart(base, r.attr("Target"))
		}
		rels[rel.ID] = rel
	}
	return rels, nil
}

// mainPart returns the name of the main document part.
func (p *opcPackage) mainPart() (string, error) {
	rels, err := p.relationships("")
	if err != nil {
		return "", err
	}
	if target := targetByType(rels, relTypeOfficeDocument); target != "" {
		return target, nil
	}
	return defaultMainPart, nil
}

// targetByType returns the internal target of the first relationship whose
// type ends with suffix.
func targetByType(rels map[string]relationship, suffix string) string {
	for _, r := range rels {
		if !r.External && strings.HasSuffix(r.Type, suffix) {
			return r.Target
		}
	}
	return ""
}

// relsPartName maps a part name to its relationships part name. The empty
// name denotes the package itself.
func relsPartName(source string) string {
	if source == "" {
		return "_rels/.rels"
	}
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

// resolvePart resolves a relationship target against the source directory.
func resolvePart(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	if base == "" || base == "." {
		return path.Clean(target)
	}
	return path.Clean(path.Join(base, target))
}

func partKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "/"))
}
