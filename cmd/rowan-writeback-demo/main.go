// Command rowan-writeback-demo builds a small function body in memory,
// stages the solver results type checking would have produced, runs the
// writeback pass, and prints the resulting final tables.
//
// The staged body corresponds to:
//
//	fn main() { let x = id(5); }
//
// where `id` is a generic identity function, so the demo shows a
// substitution list being resolved from an inference variable down to a
// concrete type.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/rowan-lang/rowan/internal/config"
	"github.com/rowan-lang/rowan/internal/diagnostic"
	"github.com/rowan-lang/rowan/internal/hir"
	"github.com/rowan-lang/rowan/internal/position"
	"github.com/rowan-lang/rowan/internal/typechecker"
	"github.com/rowan-lang/rowan/internal/types"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
	colorGreen = "\x1b[32m"
)

func main() {
	configPath := flag.String("config", "", "path to a rowan.yaml configuration file")
	debug := flag.Bool("debug", false, "enable type-checker trace output")
	dumpYAML := flag.Bool("yaml", false, "dump the final tables as YAML")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rowan-writeback-demo: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *debug {
		cfg.Checker.Debug = true
	}

	color := !*noColor &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))

	if err := run(cfg, color, *dumpYAML); err != nil {
		fmt.Fprintf(os.Stderr, "rowan-writeback-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, color, dumpYAML bool) error {
	arena := types.NewArena()
	reporter := diagnostic.NewReporter()
	hirMap := hir.NewMap()

	body, icx := stageBody(arena, hirMap, reporter)
	icx.SetDebugMode(cfg.Checker.Debug)
	icx.LintLevels = cfg.Checker.LintLevels()

	driver := typechecker.NewDriver(arena, reporter)
	driver.Parallelism = cfg.Checker.Parallelism
	err := driver.FinalizeBodies(context.Background(), []typechecker.CheckedBody{
		{Body: body, Icx: icx},
	})
	if err != nil {
		return err
	}

	emitter := diagnostic.NewEmitter(os.Stderr)
	emitter.EmitAll(reporter)

	tables, ok := driver.Tables(body.Owner)
	if !ok {
		return fmt.Errorf("no tables produced for def %d", body.Owner)
	}

	printTables(body.Owner, tables, color)
	if dumpYAML {
		return dumpTables(body.Owner, tables)
	}
	return nil
}

// stageBody constructs the HIR for `fn main() { let x = id(5); }` along
// with the scratch facts and solver solutions checking would have left
// behind.
func stageBody(arena *types.Arena, hirMap *hir.Map, reporter *diagnostic.Reporter) (*hir.Body, *typechecker.InferCtx) {
	sp := func(col int) position.Span {
		start := position.Position{Filename: "demo.rw", Line: 1, Column: col, Offset: col - 1}
		end := position.Position{Filename: "demo.rw", Line: 1, Column: col + 4, Offset: col + 3}
		return position.NewSpan(start, end)
	}

	const (
		idPath  hir.NodeID = 1 // the `id` path expression
		litFive hir.NodeID = 2 // the literal 5
		call    hir.NodeID = 3 // id(5)
		localX  hir.NodeID = 4 // the declaration of x
		patX    hir.NodeID = 5 // the binding pattern x
		letStmt hir.NodeID = 6
		block   hir.NodeID = 7
		blockEx hir.NodeID = 8
	)

	body := &hir.Body{
		ID:    1,
		Owner: 100,
		Value: &hir.BlockExpr{ID: blockEx, Block: &hir.Block{
			ID: block,
			Stmts: []hir.Stmt{&hir.LetStmt{ID: letStmt, Span: sp(1), Local: &hir.Local{
				ID:   localX,
				Pat:  &hir.BindingPat{ID: patX, Name: "x", Span: sp(5)},
				Init: &hir.CallExpr{
					ID:   call,
					Fn:   &hir.PathExpr{ID: idPath, Name: "id", Def: 7, Span: sp(9)},
					Args: []hir.Expr{&hir.LiteralExpr{ID: litFive, Kind: hir.LitInt, Value: "5", Span: sp(12)}},
					Span: sp(9),
				},
				Span: sp(1),
			}}},
			Span: sp(1),
		}, Span: sp(1)},
	}
	hirMap.AddBody(body)

	icx := typechecker.NewInferCtx(arena, hirMap, body, reporter)

	// `id` was instantiated at a fresh variable ?1, later unified with
	// i32 through the literal.
	tvar := icx.NewTyVar()
	icx.Scratch.NodeTypes[idPath] = types.TyFunc{Sig: types.FnSig{
		Params: []types.Ty{tvar},
		Return: tvar,
	}}
	icx.Scratch.NodeSubsts[idPath] = types.Substs{Types: []types.Ty{tvar}}
	icx.Scratch.NodeTypes[litFive] = tvar
	icx.Scratch.NodeTypes[call] = tvar
	icx.Scratch.NodeTypes[patX] = tvar
	icx.Scratch.NodeTypes[letStmt] = types.UnitTy
	icx.Scratch.NodeTypes[block] = types.UnitTy
	icx.Scratch.NodeTypes[blockEx] = types.UnitTy
	icx.SetLocalType(localX, tvar)
	icx.Scratch.UsedTraitImports[42] = struct{}{}

	icx.SolveTy(tvar.ID, types.I32Ty)

	return body, icx
}

func printTables(owner hir.DefID, tables *typechecker.Tables, color bool) {
	bold := func(s string) string {
		if color {
			return colorBold + s + colorReset
		}
		return s
	}
	green := func(s string) string {
		if color {
			return colorGreen + s + colorReset
		}
		return s
	}

	fmt.Printf("%s (def %d, %d nodes, tainted=%v)\n",
		bold("final tables"), owner, tables.NodeCount(), tables.TaintedByErrors())

	for _, id := range tables.NodeIDs() {
		ty, _ := tables.NodeType(id)
		fmt.Printf("  node %-3d : %s\n", id, green(ty.String()))
		if substs, ok := tables.NodeSubsts(id); ok {
			fmt.Printf("             substs [%s]\n", substs)
		}
		if adj, ok := tables.Adjustment(id); ok {
			fmt.Printf("             adjust %s\n", adj)
		}
	}

	if imports := tables.UsedTraitImports(); len(imports) > 0 {
		fmt.Printf("  used trait imports: %v\n", imports)
	}
}

// tablesDump is the YAML shape of the demo output.
type tablesDump struct {
	Owner      uint64            `yaml:"owner"`
	Tainted    bool              `yaml:"tainted"`
	NodeTypes  map[uint64]string `yaml:"node_types"`
	NodeSubsts map[uint64]string `yaml:"node_substs,omitempty"`
}

func dumpTables(owner hir.DefID, tables *typechecker.Tables) error {
	dump := tablesDump{
		Owner:     uint64(owner),
		Tainted:   tables.TaintedByErrors(),
		NodeTypes: make(map[uint64]string),
	}
	for _, id := range tables.NodeIDs() {
		ty, _ := tables.NodeType(id)
		dump.NodeTypes[uint64(id)] = ty.String()
		if substs, ok := tables.NodeSubsts(id); ok {
			if dump.NodeSubsts == nil {
				dump.NodeSubsts = make(map[uint64]string)
			}
			dump.NodeSubsts[uint64(id)] = substs.String()
		}
	}

	out, err := yaml.Marshal(dump)
	if err != nil {
		return fmt.Errorf("encoding tables: %w", err)
	}
	fmt.Println("---")
	os.Stdout.Write(out)
	return nil
}
