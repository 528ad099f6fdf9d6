// Command reggen compiles declarative register bank definitions (TOML) into
// Go source built on regio/reg and regio/regdef. It is meant to run under
// go:generate:
//
//	//go:generate go run regio/cmd/reggen gen --out . uart.toml
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"regio/internal/gen"
)

func main() {
	cli, cmd := parseArgs(os.Args[1:])

	var err error
	switch {
	case strings.HasPrefix(cmd, "gen "):
		err = runGen(cli.Gen)
	case strings.HasPrefix(cmd, "lint "):
		err = runLint(cli.Lint)
	case strings.HasPrefix(cmd, "dump "):
		err = runDump(cli.Dump)
	case strings.HasPrefix(cmd, "info "):
		err = runInfo(cli.Info)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	checkf(err, "%s failed", strings.Fields(cmd)[0])
}

func runGen(c Gen) error {
	return gen.CompileAll(context.Background(), c.Defs, c.Out)
}

func runLint(c Lint) error {
	for _, path := range c.Defs {
		d, err := gen.Load(path)
		if err != nil {
			return err
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	fmt.Printf("%d definition(s) ok\n", len(c.Defs))
	return nil
}

func runDump(c Dump) error {
	d, err := gen.Load(c.Def)
	if err != nil {
		return err
	}
	buf, err := gen.DumpJSON(d)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(buf, '\n'))
	return err
}

func runInfo(c Info) error {
	d, err := gen.Load(c.Def)
	if err != nil {
		return err
	}
	return gen.WriteInfo(d, os.Stdout)
}
