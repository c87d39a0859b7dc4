package pipeline

import (
	"bytes"
	"regexp"
)

// utf8BOM is stripped from the start of sources saved by some editors.
var utf8BOM = []byte("\xef\xbb\xbf")

// crlfOrCR matches Windows and old Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NormalizeSource prepares raw file content for parsing: the BOM is
// removed and line endings become \n. Front matter and component tags
// spanning lines rely on the latter.
func NormalizeSource(src []byte) []byte {
	src = bytes.TrimPrefix(src, utf8BOM)
	if bytes.IndexByte(src, '\r') < 0 {
		return src
	}
	return crlfOrCR.ReplaceAll(src, []byte("\n"))
}
