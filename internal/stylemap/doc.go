// Package stylemap parses and evaluates style-mapping rules that translate
// named DOCX styles into HTML element paths.
//
// A rule has the form:
//
//	<matcher> => <path>
//
// Matchers select a document element kind and, optionally, a style:
//
//	p                              any paragraph
//	p.Heading1                     paragraph with style ID "Heading1"
//	p[style-name='Heading 1']      paragraph with style name "Heading 1"
//	p[style-name^='Heading']       paragraph whose style name starts with "Heading"
//	r[style-name='Strong']         run with style name "Strong"
//	table                          any table
//	b, i, u, strike                bold, italic, underline, strikethrough formatting
//
// Paths are one or more elements separated by ">":
//
//	h1:fresh                       always open a new <h1>
//	table.docx-table               <table class="docx-table">
//	ul > li:fresh                  reuse an open <ul>, always open a new <li>
//
// An empty path unwraps the element (children are kept, no wrapper is
// emitted). A path of "!" drops the element and its content.
//
// Style names compare case-insensitively. Rules are evaluated in order and the
// first matching rule wins.
package stylemap
