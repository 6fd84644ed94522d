package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  checkseed -file PATH - validate a JSON seed file")
	fmt.Fprintln(cli.out, "  rules [-file PATH] [-search TEXT] [-ordering FIELDS] - list the rules of a seed (default seed if no file)")
	fmt.Fprintln(cli.out, "  applications [-file PATH] - list the applications of a seed (default seed if no file)")
}

// printHeaders is true when output goes to an interactive terminal, so piped output stays parsable.
func (cli *commandLine) printHeaders() bool {
	if f, ok := cli.out.(*os.File); ok {
		return isTerminalFunc(int(f.Fd()))
	}
	return isTerminalFunc(-1)
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	checkSeedCmd := flag.NewFlagSet("checkseed", flag.ExitOnError)
	checkSeedFile := checkSeedCmd.String("file", "", "Path to the JSON seed file.")

	rulesCmd := flag.NewFlagSet("rules", flag.ExitOnError)
	rulesFile := rulesCmd.String("file", "", "Path to a JSON seed file. The default seed is used if empty.")
	rulesSearch := rulesCmd.String("search", "", "Only list rules whose name or description contains this text.")
	rulesOrdering := rulesCmd.String("ordering", "", "Comma separated fields to order by, prefix with '-' for descending. e.g. name,-id")

	appsCmd := flag.NewFlagSet("applications", flag.ExitOnError)
	appsFile := appsCmd.String("file", "", "Path to a JSON seed file. The default seed is used if empty.")

	switch args[1] {
	case "checkseed":
		if err := checkSeedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *checkSeedFile == "" {
			checkSeedCmd.Usage()
			return errHelp
		}
		return cli.checkSeed(*checkSeedFile)
	case "rules":
		if err := rulesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listRules(*rulesFile, *rulesSearch, *rulesOrdering)
	case "applications":
		if err := appsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listApplications(*appsFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
