package main

import (
	"flag"
	"os"

	"github.com/hexops/cmder"
)

// commands contains all registered subcommands.
var commands cmder.Commander

var usageText = `sparql runs SPARQL operations against a Virtuoso-style store.

Usage:
	sparql <command> [arguments]

The commands are:
	query    run a read operation (query, select, ask, construct, describe)
	update   run a write operation (insert, insert_data, update, delete, delete_data, create, drop, clear)

Connection settings come from a YAML file (-config). A .env file in the working
directory is loaded first so the YAML can reference ${VARIABLES}.

Use "sparql <command> -h" for more information about a command.
`

func main() {
	commands.Run(flag.CommandLine, "sparql", usageText, os.Args[1:])
}
