// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"formula/internal/lsp"
)

const lsName = "formula"

var (
	version = "0.1.0"
	handler protocol.Handler
)

var log = commonlog.GetLogger("formula.lsp")

func main() {
	// Logs go to stderr; stdout carries the protocol.
	verbosity := flag.Int("v", 1, "log verbosity")
	debug := flag.Bool("debug", false, "log every protocol message")
	flag.Parse()

	commonlog.Configure(*verbosity, nil)

	formulaHandler := lsp.NewFormulaHandler()

	handler = protocol.Handler{
		Initialize:                     formulaHandler.Initialize,
		Initialized:                    formulaHandler.Initialized,
		Shutdown:                       formulaHandler.Shutdown,
		SetTrace:                       formulaHandler.SetTrace,
		TextDocumentDidOpen:            formulaHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           formulaHandler.TextDocumentDidClose,
		TextDocumentDidChange:          formulaHandler.TextDocumentDidChange,
		TextDocumentCompletion:         formulaHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: formulaHandler.TextDocumentSemanticTokensFull,
		TextDocumentFormatting:         formulaHandler.TextDocumentFormatting,
		TextDocumentHover:              formulaHandler.TextDocumentHover,
	}

	s := server.NewServer(&handler, lsName, *debug)

	log.Infof("starting %s language server %s", lsName, version)
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
