// Command reactctl inspects the reaction catalog and manages stored rate sets.
//
//	reactctl [-config path] <command> [args]
//
// Offline commands (categories, target, expand) only touch the in-process
// catalog. The remaining commands open the configured rate set and blob stores.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"reactcore/internal/config"
	"reactcore/internal/core"
	"reactcore/internal/observability"
	"reactcore/pkg/reaction"
	"reactcore/pkg/serial"
)

// ConfigEnv names the environment variable consulted when -config is absent.
const ConfigEnv = "REACTIONS_CONFIG"

var (
	exitFunc    = os.Exit
	openService = core.Open
)

type env struct {
	ctx    context.Context
	cfg    config.Config
	stdout io.Writer
	svc    *core.Service
}

type command struct {
	usage   string
	minArgs int
	maxArgs int
	online  bool
	run     func(e *env, args []string) error
}

var commands = map[string]command{
	"categories": {usage: "categories", run: runCategories},
	"target":     {usage: "target <Z> <A> <category>", minArgs: 3, maxArgs: 3, run: runTarget},
	"expand":     {usage: "expand <file>", minArgs: 1, maxArgs: 1, run: runExpand},
	"save":       {usage: "save <name> <file>", minArgs: 2, maxArgs: 2, online: true, run: runSave},
	"load":       {usage: "load <name>", minArgs: 1, maxArgs: 1, online: true, run: runLoad},
	"list":       {usage: "list", online: true, run: runList},
	"delete":     {usage: "delete <name>", minArgs: 1, maxArgs: 1, online: true, run: runDelete},
	"export":     {usage: "export <name> [key]", minArgs: 1, maxArgs: 2, online: true, run: runExport},
	"import":     {usage: "import <key> [name]", minArgs: 1, maxArgs: 2, online: true, run: runImport},
}

var commandOrder = []string{"categories", "target", "expand", "save", "load", "list", "delete", "export", "import"}

func main() {
	code := cli(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage: reactctl [-config path] <command> [args]")
	for _, name := range commandOrder {
		_, _ = fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

func cli(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("reactctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var configPath string
	fs.StringVar(&configPath, "config", os.Getenv(ConfigEnv), "path to TOML config")
	fs.Usage = func() {
		usage(stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", rest[0])
		usage(stderr)
		return 2
	}
	if n := len(rest) - 1; n < cmd.minArgs || n > cmd.maxArgs {
		_, _ = fmt.Fprintf(stderr, "usage: reactctl %s\n", cmd.usage)
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if _, err := observability.InitLogger("reactctl", observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    stderr,
	}); err != nil {
		_, _ = fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}

	e := &env{ctx: ctx, cfg: cfg, stdout: stdout}
	if cmd.online {
		svc, err := openService(ctx, cfg)
		if err != nil {
			log.Error().Err(err).Msg("open service")
			return 1
		}
		defer func() {
			if cerr := svc.Close(); cerr != nil {
				log.Warn().Err(cerr).Msg("close store")
			}
		}()
		e.svc = svc
	}
	if err := cmd.run(e, rest[1:]); err != nil {
		log.Error().Err(err).Str("command", rest[0]).Msg("command failed")
		if core.IsNotFound(err) {
			return 3
		}
		return 1
	}
	return 0
}

// offline configures the process-wide interner from cfg without opening any store.
func offline(cfg config.Config) (*reaction.Interner, *serial.Registry, error) {
	catalog, err := core.LoadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	in := reaction.Default()
	in.Configure(reaction.WithBranching(cfg.BranchingMode()), reaction.WithCatalog(catalog))
	reg, err := reaction.NewRegistry(in, catalog)
	if err != nil {
		return nil, nil, err
	}
	return in, reg, nil
}

func runCategories(e *env, _ []string) error {
	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	for _, c := range reaction.Categories() {
		induced := "-"
		if p, err := c.InducedBy(); err == nil {
			induced = p.Name()
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name(), c.Typus(), induced)
	}
	for _, c := range reaction.ProductionCategories() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\tproduces %s\n", c.Name(), c.Typus(), c.Produces())
	}
	return tw.Flush()
}

func lookupCategory(name string) (reaction.ReactionCategory, error) {
	if c, ok := reaction.CategoryByName(name); ok {
		return c, nil
	}
	if c, ok := reaction.LookupCategory(reaction.Typus(name)); ok {
		return c, nil
	}
	return reaction.ReactionCategory{}, fmt.Errorf("unknown reaction category %q", name)
}

func runTarget(e *env, args []string) error {
	z, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("Z: %w", err)
	}
	a, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("A: %w", err)
	}
	category, err := lookupCategory(args[2])
	if err != nil {
		return err
	}
	in, _, err := offline(e.cfg)
	if err != nil {
		return err
	}
	parent, err := in.Catalog().Resolve(z, a, 0)
	if err != nil {
		return err
	}
	target, err := category.CalcTarget(parent, in.Catalog())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "%s %s -> %s (%d)\n", parent, category, target, target.Encode())
	return err
}

func writeRates(w io.Writer, rates []reaction.Rate) error {
	data, err := core.EncodeRates(rates)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func runExpand(e *env, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	_, reg, err := offline(e.cfg)
	if err != nil {
		return err
	}
	rates, err := core.DecodeRates(data, reg)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	return writeRates(e.stdout, core.ExpandRates(rates))
}

func runSave(e *env, args []string) error {
	data, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	rates, err := e.svc.DecodeRates(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[1], err)
	}
	summary, err := e.svc.SaveRates(e.ctx, args[0], rates)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "saved %s (%d rates)\n", summary.Name, summary.Count)
	return err
}

func runLoad(e *env, args []string) error {
	rates, err := e.svc.LoadRates(e.ctx, args[0])
	if err != nil {
		return err
	}
	return writeRates(e.stdout, rates)
}

func runList(e *env, _ []string) error {
	sets, err := e.svc.ListRateSets(e.ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tRATES\tUPDATED")
	for _, s := range sets {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.Count, s.UpdatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func runDelete(e *env, args []string) error {
	if err := e.svc.DeleteRateSet(e.ctx, args[0]); err != nil {
		return err
	}
	_, err := fmt.Fprintf(e.stdout, "deleted %s\n", args[0])
	return err
}

func optional(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func runExport(e *env, args []string) error {
	info, err := e.svc.ExportRateSet(e.ctx, args[0], optional(args, 1))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "exported %s to %s (%d bytes)\n", args[0], info.Key, info.Size)
	return err
}

func runImport(e *env, args []string) error {
	summary, err := e.svc.ImportRateSet(e.ctx, args[0], optional(args, 1))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "imported %s as %s (%d rates)\n", args[0], summary.Name, summary.Count)
	return err
}
