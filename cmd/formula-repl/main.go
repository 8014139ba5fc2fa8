// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"formula/repl"
)

const historyFile = ".formula_history"

func main() {
	verbosity := flag.Int("v", 0, "log verbosity")
	noHistory := flag.Bool("no-history", false, "do not read or write the history file")
	flag.Parse()

	commonlog.Configure(*verbosity, nil)

	var histPath string
	if !*noHistory {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, historyFile)
		}
	}

	fmt.Println("Quest formula REPL. Type :help for commands, :quit or Ctrl+D to exit.")
	if err := repl.Start(histPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
