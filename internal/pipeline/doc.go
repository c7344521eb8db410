// Package pipeline turns a DOCX package into a self-contained HTML page.
//
// The stages are:
//   - DOCX to HTML fragment conversion driven by a style map (DOCXConverter)
//   - relative image and link rewriting against the document's directory
//   - page assembly from the document template (DocumentTemplate)
//   - extra CSS injection into an assembled page (CSSInjection)
//
// PDF rendering lives in the root docx2pdf package, which loads the page in
// a headless browser.
package pipeline
