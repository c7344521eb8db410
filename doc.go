// Package docx2pdf converts Word (DOCX) documents to PDF using headless Chrome.
//
// # Quick Start
//
// Create a converter, convert a document, and close when done:
//
//	conv, err := docx2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	data, err := os.ReadFile("report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := conv.Convert(ctx, docx2pdf.Input{DOCX: data})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.pdf", result.PDF, 0644)
//
// The result contains the PDF bytes (result.PDF), the intermediate HTML
// (result.HTML) and conversion warnings such as unrecognised styles
// (result.Warnings). Use Input.HTMLOnly to skip PDF generation.
//
// # Conversion Pipeline
//
//  1. The DOCX package is read (document, styles, numbering, relationships).
//  2. Paragraphs, runs and tables are mapped to HTML through a style map.
//  3. The fragment is wrapped in a page template with the CSS style.
//  4. The page is written to a temporary file, loaded in headless Chrome,
//     and printed to PDF once the network is idle.
//
// # Style Maps
//
// A style map rule matches a DOCX paragraph, run or table and names the HTML
// elements it becomes. User rules come first, then the built-in and default
// rules; the first match wins:
//
//	conv, err := docx2pdf.NewConverter(
//	    docx2pdf.WithStyleMap(
//	        "p[style-name='Quote'] => blockquote:fresh",
//	        "r[style-name='Code'] => code",
//	        "p[style-name='Comment'] => !",
//	    ),
//	)
//
// # Page Settings
//
// Pages default to A4 portrait with 1cm margins and background graphics:
//
//	result, err := conv.Convert(ctx, docx2pdf.Input{
//	    DOCX: data,
//	    Page: &docx2pdf.PageSettings{Size: "letter", Orientation: "landscape", Margin: 2},
//	})
//
// # Browser Requirements
//
// PDF generation requires Chrome or Chromium. With the default rod backend a
// managed Chromium is downloaded on first run (~/.cache/rod/browser/). The
// chromedp backend uses the locally installed browser. Set ROD_BROWSER_BIN or
// use WithBrowserBin to pick a binary. The browser runs without its sandbox
// and is terminated after every conversion.
package docx2pdf
