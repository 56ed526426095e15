package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/hexops/cmder"
	"github.com/pkg/errors"

	"github.com/saturnines/nexus-sparql/pkg/virtuoso"
)

func init() {
	const usage = `
Examples:

  Insert a triple:

    $ sparql update -config conn.yaml 'INSERT DATA { GRAPH <urn:g> { <urn:a> <urn:b> <urn:c> } }'

  Clear a graph:

    $ sparql update -kind clear 'CLEAR GRAPH <urn:g>'

`

	flagSet := flag.NewFlagSet("update", flag.ExitOnError)
	conn := registerConnectionFlags(flagSet, "insert_data")

	handler := func(args []string) error {
		_ = flagSet.Parse(args)
		if flagSet.NArg() != 1 {
			return &cmder.UsageError{}
		}

		op, err := conn.operation(false)
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

		if out.Ack == nil {
			fmt.Println("(no acknowledgement)")
			return nil
		}
		fmt.Println(*out.Ack)
		return nil
	}

	commands = append(commands, &cmder.Command{
		FlagSet: flagSet,
		Aliases: []string{"u"},
		Handler: handler,
		UsageFunc: func() {
			fmt.Fprintf(flag.CommandLine.Output(), "Usage of 'sparql %s':\n", flagSet.Name())
			flagSet.PrintDefaults()
			fmt.Fprintf(flag.CommandLine.Output(), "%s", usage)
		},
	})
}
