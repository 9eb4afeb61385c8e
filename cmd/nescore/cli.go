package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nestor/emu/log"
)

type CLI struct {
	Run      Run      `cmd:"" help:"Run a ROM in the emulator." default:"withargs"`
	RomInfos RomInfos `cmd:"" help:"Show ROM header info." name:"rom-infos"`
	Settings Settings `cmd:"" help:"Open the key-binding settings dialog."`

	Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
}

type Run struct {
	RomPath string `arg:"" name:"/path/to/rom" help:"ROM to run." required:"true" type:"existingfile"`

	Scale int      `name:"scale" help:"Window scale factor." default:"3"`
	Trace *outfile `name:"trace" help:"Write CPU trace log to FILE, stdout, or stderr." placeholder:"FILE|stdout|stderr"`
}

type RomInfos struct {
	RomPath string `arg:"" name:"/path/to/rom" required:"true" type:"existingfile"`
}

type Settings struct{}

var vars = kong.Vars{
	"log_help": "Enable debug logging for the given modules.",
}

func parseArgs(args []string) (CLI, string) {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("nescore"),
		kong.Description("NES emulator core, reference presentation layer."),
		kong.UsageOnError(),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	return cfg, ctx.Command()
}

type logModMask log.ModuleMask

// Decode implements kong.MapperValue, turning a comma-separated module
// list into a debug mask.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	nolog, all := false, false

	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			all = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %q", v)
			}
			*lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		log.Disable()
		return nil
	}
	if all {
		log.EnableDebugModules(log.ModuleMaskAll)
		return nil
	}
	log.EnableDebugModules(log.ModuleMask(*lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode implements kong.MapperValue, resolving FILE|stdout|stderr into
// an io.WriteCloser.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w, f.close = fd, fd.Close
	}
	return nil
}

func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+": %v", append(args, err)...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "nescore: "+format+"\n", args...)
	os.Exit(1)
}
