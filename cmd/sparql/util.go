package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/saturnines/nexus-sparql/pkg/config"
	"github.com/saturnines/nexus-sparql/pkg/virtuoso"
)

// paramFlag collects repeated -param key=value flags
type paramFlag virtuoso.Params

func (p paramFlag) String() string {
	pairs := make([]string, 0, len(p))
	for k, v := range p {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (p paramFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	p[key] = val
	return nil
}

// connectionFlags are shared by every subcommand
type connectionFlags struct {
	configPath *string
	envFile    *string
	kind       *string
	params     paramFlag
}

func registerConnectionFlags(flagSet *flag.FlagSet, defaultKind string) *connectionFlags {
	f := &connectionFlags{
		configPath: flagSet.String("config", "sparql.yaml", "path to the connection YAML file"),
		envFile:    flagSet.String("env", ".env", "dotenv file loaded before the config is read"),
		kind:       flagSet.String("kind", defaultKind, "operation kind"),
		params:     paramFlag{},
	}
	flagSet.Var(f.params, "param", "extra protocol parameter as key=value (repeatable)")
	return f
}

// client loads the environment and config, then builds a client
func (f *connectionFlags) client() (*virtuoso.Client, error) {
	if err := godotenv.Load(*f.envFile); err != nil {
		log.Debugf("%s not loaded: %v", *f.envFile, err)
	}

	conn, err := config.NewDefaultLoader().Load(*f.configPath)
	if err != nil {
		return nil, errors.Wrap(err, "load connection config")
	}

	initLogger(conn.LogLevel)
	log.WithFields(log.Fields{
		"endpoint":        conn.Endpoint,
		"update_endpoint": conn.UpdateEndpoint,
		"auth_method":     conn.AuthMethod,
		"timeout":         conn.Timeout,
	}).Debug("connection configured")

	c, err := virtuoso.NewClientFromConfig(conn)
	if err != nil {
		return nil, errors.Wrap(err, "create client")
	}
	return c, nil
}

// operation parses -kind and checks it is of the expected family
func (f *connectionFlags) operation(read bool) (virtuoso.Operation, error) {
	op, err := virtuoso.ParseOperation(*f.kind)
	if err != nil {
		return 0, err
	}
	if op.IsRead() != read {
		return 0, fmt.Errorf("%s is not a %s operation", op, family(read))
	}
	return op, nil
}

func family(read bool) string {
	if read {
		return "read"
	}
	return "write"
}

func initLogger(level string) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
}
