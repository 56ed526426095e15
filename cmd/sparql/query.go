package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/hexops/cmder"
	"github.com/pkg/errors"

	"github.com/saturnines/nexus-sparql/pkg/virtuoso"
)

func init() {
	const usage = `
Examples:

  Select every triple, limited to ten rows:

    $ sparql query -config conn.yaml 'SELECT * WHERE { ?s ?p ?o } LIMIT 10'

  Ask against a named graph:

    $ sparql query -kind ask -param default-graph-uri=urn:g 'ASK { ?s ?p ?o }'

`

	flagSet := flag.NewFlagSet("query", flag.ExitOnError)
	conn := registerConnectionFlags(flagSet, "select")

	handler := func(args []string) error {
		_ = flagSet.Parse(args)
		if flagSet.NArg() != 1 {
			return &cmder.UsageError{}
		}

		op, err := conn.operation(true)
		if err != nil {
			return err
		}

		client, err := conn.client()
		if err != nil {
			return err
		}

		out, err := client.Do(context.Background(), op, flagSet.Arg(0), virtuoso.Params(conn.params))
		if err != nil {
			return errors.Wrap(err, op.String())
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out.Result)
	}

	commands = append(commands, &cmder.Command{
		FlagSet: flagSet,
		Aliases: []string{"q"},
		Handler: handler,
		UsageFunc: func() {
			fmt.Fprintf(flag.CommandLine.Output(), "Usage of 'sparql %s':\n", flagSet.Name())
			flagSet.PrintDefaults()
			fmt.Fprintf(flag.CommandLine.Output(), "%s", usage)
		},
	})
}
