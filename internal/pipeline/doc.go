// Package pipeline implements the MDX-flavoured Markdown to HTML pipeline.
//
// A render goes through these stages:
//   - source normalization (BOM, line endings) and front matter split
//   - goldmark parsing with GFM, footnotes and self-closing component
//     blocks such as <Table data={...} />
//   - heading collection for table-of-contents data
//   - rendering, where headings, links, images, code and component blocks
//     are dispatched to a Components map supplied per render
//
// Components return TrustedHTML. Values of that type are written without
// escaping, so they are only produced by Element, Text, the highlighter and
// goldmark itself. WrapPage turns a fragment into a standalone document.
package pipeline
