// Package pipeline prepares the HTML document the renderer consumes.
//
// This package handles the stages around parsing:
//   - Markdown preprocessing (line normalization, highlight syntax)
//   - Markdown to HTML conversion via Goldmark
//   - Stylesheet injection into HTML documents
//   - Rewriting relative resource paths in the parsed tree
//
// Parsing, styling, layout and PDF output live in their own packages. The
// text stages return plain HTML; the path rewrite edits a dom tree in place.
package pipeline
