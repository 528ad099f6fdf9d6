package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"regio/log"
)

type (
	CLI struct {
		Gen  Gen  `cmd:"" help:"Compile register definition files into Go source."`
		Lint Lint `cmd:"" help:"Check definition files without generating anything."`
		Dump Dump `cmd:"" help:"Print a bank layout as JSON."`
		Info Info `cmd:"" help:"Print a bank layout as a table."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
	}

	Gen struct {
		Out  string   `name:"out" help:"Output directory for generated files." default:"." type:"existingdir"`
		Defs []string `arg:"" name:"def.toml" help:"${defs_help}" type:"existingfile"`
	}

	Lint struct {
		Defs []string `arg:"" name:"def.toml" type:"existingfile"`
	}

	Dump struct {
		Def string `arg:"" name:"def.toml" type:"existingfile"`
	}

	Info struct {
		Def string `arg:"" name:"def.toml" type:"existingfile"`
	}
)

var vars = kong.Vars{
	"defs_help": "Register definition files (one generated file per definition).",
	"log_help":  "Enable debug logging for specified modules.",
}

func parseArgs(args []string) (CLI, string) {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("reggen"),
		kong.Description("Register bank definition compiler."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")
	return cfg, ctx.Command()
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}

	loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}

	fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "reggen:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
