// Package html2pdf renders an HTML document and its CSS onto a single A4
// PDF page.
//
// # Quick Start
//
// Render is the zero-configuration entry point. It never fails:
//
//	pdf := html2pdf.Render("<p>Hello</p>")
//	os.WriteFile("hello.pdf", pdf, 0644)
//
// For relative stylesheets and images, custom fonts, named styles, logging
// or Markdown input, create a Converter:
//
//	conv, err := html2pdf.NewConverter(
//	    html2pdf.WithStyle("default"),
//	    html2pdf.WithFontDir("/usr/share/fonts/truetype"),
//	    html2pdf.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, html2pdf.Input{
//	    HTML:    content,
//	    BaseDir: "/path/to/site",
//	})
//
// The result contains the PDF bytes (result.PDF) and the HTML that was laid
// out (result.HTML), after Markdown conversion and style injection.
//
// # Rendering Pipeline
//
//  1. Markdown to HTML via Goldmark (only for Input.Markdown)
//  2. Relative image and stylesheet paths made absolute against BaseDir
//  3. Named style and Input.CSS injected ahead of the document's own styles
//  4. HTML parsed into a node tree
//  5. <style> and <link rel="stylesheet"> rules collected
//  6. Cascade and block/inline layout at 595x842 points
//  7. PDF written: text, backgrounds, borders, images, link annotations
//
// Missing stylesheets, fonts and images never abort a conversion. They are
// skipped (unknown font families fall back to Helvetica) and reported
// through the logger.
//
// # Batch Processing
//
// A Converter is safe for concurrent use. Size a worker group with
// ResolveWorkers:
//
//	g.SetLimit(html2pdf.ResolveWorkers(0))
package html2pdf
