package main

import (
	configcmd "github.com/neilberkman/chatvibe/cmd/config"
	"github.com/neilberkman/chatvibe/cmd/discover"
	"github.com/neilberkman/chatvibe/cmd/export"
	"github.com/neilberkman/chatvibe/cmd/keyword"
	"github.com/neilberkman/chatvibe/cmd/parse"
	"github.com/neilberkman/chatvibe/cmd/root"
	"github.com/neilberkman/chatvibe/cmd/serve"
	"github.com/neilberkman/chatvibe/cmd/terminal"
	"github.com/neilberkman/chatvibe/cmd/vibe"
	"github.com/neilberkman/chatvibe/cmd/words"
)

// Version information, set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Set version information
	root.Version = version
	root.Commit = commit
	root.Date = date
	root.RootCmd.Version = version

	// Add subcommands
	root.RootCmd.AddCommand(parse.ParseCmd)
	root.RootCmd.AddCommand(keyword.KeywordCmd)
	root.RootCmd.AddCommand(words.WordsCmd)
	root.RootCmd.AddCommand(vibe.VibeCmd)
	root.RootCmd.AddCommand(export.ExportCmd)
	root.RootCmd.AddCommand(discover.DiscoverCmd)
	root.RootCmd.AddCommand(serve.ServeCmd)
	root.RootCmd.AddCommand(terminal.TerminalCmd)
	root.RootCmd.AddCommand(configcmd.ConfigCmd)

	// Execute
	root.Execute()
}
