package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"formula/internal/parser"
	"formula/token"
)

// document is an open editor buffer and its latest parse.
type document struct {
	uri    protocol.DocumentUri
	text   string
	result *parser.ParseResult
}

func newDocument(uri protocol.DocumentUri, text string) *document {
	return &document{uri: uri, text: text, result: parser.ParseSourceWithTokens(text)}
}

// offsetAt converts an editor position to a byte offset, clamped to the
// text. Formulas are ASCII, so UTF-16 columns equal byte columns.
func offsetAt(text string, pos protocol.Position) int {
	offset := 0
	for line := uint32(0); line < pos.Line; line++ {
		next := strings.IndexByte(text[offset:], '\n')
		if next < 0 {
			return len(text)
		}
		offset += next + 1
	}
	end := len(text)
	if nl := strings.IndexByte(text[offset:], '\n'); nl >= 0 {
		end = offset + nl
	}
	return min(offset+int(pos.Character), end)
}

func toProtocolPosition(pos token.Position) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(0, pos.Line-1)),   // LSP uses 0-based line numbers
		Character: uint32(max(0, pos.Column-1)), // LSP uses 0-based column numbers
	}
}

// spanRange covers length bytes starting at pos on pos's line.
func spanRange(pos token.Position, length int) protocol.Range {
	start := toProtocolPosition(pos)
	end := start
	end.Character += uint32(max(1, length))
	return protocol.Range{Start: start, End: end}
}

// endPosition is the position just past the last character of text.
func endPosition(text string) protocol.Position {
	line := strings.Count(text, "\n")
	last := strings.LastIndexByte(text, '\n')
	return protocol.Position{Line: uint32(line), Character: uint32(len(text) - last - 1)}
}

// applyChange applies one content change event to text.
func applyChange(text string, change any) string {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return c.Text
	case protocol.TextDocumentContentChangeEvent:
		if c.Range == nil {
			return c.Text
		}
		start := offsetAt(text, c.Range.Start)
		end := max(start, offsetAt(text, c.Range.End))
		return text[:start] + c.Text + text[end:]
	}
	return text
}
