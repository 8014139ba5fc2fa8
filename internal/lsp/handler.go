package lsp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"formula/grammar"
	"formula/internal/ast"
	"formula/token"
)

var log = commonlog.GetLogger("formula.lsp")

// SemanticTokenTypes is the legend advertised to clients.
var SemanticTokenTypes = []string{
	"keyword",
	"number",
	"operator",
	"parameter",
}

var SemanticTokenModifiers = []string{}

// FormulaHandler implements the LSP server handlers for formula documents.
// Documents live in memory only; the editor buffer is the source of truth.
type FormulaHandler struct {
	mu         sync.RWMutex
	docs       map[protocol.DocumentUri]*document
	paramCount int // -1 when unknown, from initializationOptions.paramCount
}

func NewFormulaHandler() *FormulaHandler {
	return &FormulaHandler{
		docs:       make(map[protocol.DocumentUri]*document),
		paramCount: -1,
	}
}

// Initialize responds to the client's initialize request and advertises the
// server's capabilities
func (h *FormulaHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	if opts, ok := params.InitializationOptions.(map[string]any); ok {
		if n, ok := opts["paramCount"].(float64); ok {
			h.mu.Lock()
			h.paramCount = int(n)
			h.mu.Unlock()
		}
	}

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
			DocumentFormattingProvider: true,
			HoverProvider:              true,
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: "formula",
		},
	}, nil
}

func (h *FormulaHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *FormulaHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *FormulaHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (h *FormulaHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)
	doc := h.store(params.TextDocument.URI, params.TextDocument.Text)
	h.publishDiagnostics(ctx, doc)
	return nil
}

func (h *FormulaHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	h.mu.RLock()
	doc, ok := h.docs[params.TextDocument.URI]
	h.mu.RUnlock()

	text := ""
	if ok {
		text = doc.text
	}
	for _, change := range params.ContentChanges {
		text = applyChange(text, change)
	}

	h.publishDiagnostics(ctx, h.store(params.TextDocument.URI, text))
	return nil
}

func (h *FormulaHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.docs, params.TextDocument.URI)
	h.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// TextDocumentCompletion offers the keyword operators and, when the
// parameter count is known, the parameters.
func (h *FormulaHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	keywordKind := protocol.CompletionItemKindKeyword
	variableKind := protocol.CompletionItemKindVariable

	var items []protocol.CompletionItem
	for _, kw := range token.Keywords() {
		detail := fmt.Sprintf("binary operator, precedence %d", token.LookupIdent(kw).Precedence())
		items = append(items, protocol.CompletionItem{
			Label:  kw,
			Kind:   &keywordKind,
			Detail: &detail,
		})
	}

	h.mu.RLock()
	count := h.paramCount
	h.mu.RUnlock()
	for i := 1; i <= count; i++ {
		detail := fmt.Sprintf("parameter %d", i)
		items = append(items, protocol.CompletionItem{
			Label:  fmt.Sprintf("p%d", i),
			Kind:   &variableKind,
			Detail: &detail,
		})
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

func (h *FormulaHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc.result.Tokens)),
	}, nil
}

// TextDocumentFormatting replaces the whole document with its canonical
// spelling. Documents that do not parse are left alone.
func (h *FormulaHandler) TextDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	formatted, err := grammar.Format(doc.text)
	if err != nil {
		log.Debugf("not formatting %s: %s", doc.uri, err)
		return nil, nil
	}
	if strings.HasSuffix(doc.text, "\n") {
		formatted += "\n"
	}
	if formatted == doc.text {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{{
		Range:   protocol.Range{Start: protocol.Position{}, End: endPosition(doc.text)},
		NewText: formatted,
	}}, nil
}

// TextDocumentHover describes the innermost expression under the cursor.
func (h *FormulaHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	offset := offsetAt(doc.text, params.Position)
	node := doc.result.NodeAt(offset)
	if node == nil {
		return nil, nil
	}

	tok, ok := doc.result.TokenAt(offset)
	if !ok {
		tok = token.Token{Position: node.NodePos()}
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: describe(node),
		},
		Range: ptrRange(spanRange(tok.Position, len(tok.Lexeme))),
	}, nil
}

func describe(node ast.Expr) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** `%s`\n\n", node.NodeType(), node.String())
	switch n := node.(type) {
	case *ast.RangeExpr:
		total := 0.0
		for _, r := range n.Ranges {
			total += r.Len()
		}
		fmt.Fprintf(&b, "Draws one of %g values, each equally likely.\n", total)
	case *ast.ParameterExpr:
		fmt.Fprintf(&b, "Positional parameter %d.\n", n.Index+1)
	case *ast.BinaryExpr:
		if n.Op == token.TO {
			b.WriteString("Draws once from the span between the smallest bound (at most 2000000000) and the largest bound (at least 0) of both sides.\n")
		}
	}
	b.WriteString("\n```\n" + ast.Dump(node) + "```")
	return b.String()
}

func (h *FormulaHandler) store(uri protocol.DocumentUri, text string) *document {
	doc := newDocument(uri, text)
	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()
	return doc
}

func (h *FormulaHandler) document(uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	doc, ok := h.docs[uri]
	if !ok {
		return nil, fmt.Errorf("document %s is not open", uri)
	}
	return doc, nil
}

func (h *FormulaHandler) publishDiagnostics(ctx *glsp.Context, doc *document) {
	h.mu.RLock()
	count := h.paramCount
	h.mu.RUnlock()

	diagnostics := collectDiagnostics(doc, count)
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), doc.uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func ptrRange(r protocol.Range) *protocol.Range {
	return &r
}
