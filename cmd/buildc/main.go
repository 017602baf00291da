package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buildc/buildc/internal/diag"
	"github.com/buildc/buildc/internal/fsutil"
	"github.com/buildc/buildc/pkg/codegen"
	"github.com/buildc/buildc/pkg/lower"
	"github.com/buildc/buildc/pkg/mir"
	"github.com/buildc/buildc/pkg/parser"
	"github.com/buildc/buildc/pkg/passes"
	"github.com/buildc/buildc/pkg/toolchain"
	"github.com/buildc/buildc/pkg/version"
)

var (
	buildDir     string
	backendName  string
	optimize     bool
	debug        bool
	listBackends bool
	dumpAST      bool
	dumpHIR      bool
	dumpMIR      bool
	vizFile      string
	showVersion  bool
)

var rootCmd = &cobra.Command{
	Use:   "buildc [source file]",
	Short: "Build DSL compiler " + version.GetVersion(),
	Long: `buildc reads a Build DSL project file and emits a build manifest
for an underlying build tool.

PIPELINE:
  source -> AST -> HIR -> MIR (control-flow graph) -> optimization
  passes -> backend manifest

BACKENDS:
  ninja  - Ninja build manifest (default)

DEBUGGING:
  -d, --debug     print progress messages as the pipeline runs
  --dump-ast      print the parsed AST and exit
  --dump-hir      print the lowered HIR and exit
  --dump-mir      print every MIR block after optimization and exit`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetFullVersion())
			return
		}

		if listBackends {
			fmt.Println("Available backends:")
			for _, name := range codegen.ListBackends() {
				fmt.Printf("  - %s\n", name)
			}
			return
		}

		if len(args) == 0 {
			cmd.Help()
			os.Exit(0)
		}

		if err := compile(args[0]); err != nil {
			diag.Report(os.Stderr, err)
			os.Exit(diag.ExitCode(err))
		}
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version")
	rootCmd.Flags().StringVarP(&buildDir, "build-dir", "C", "build", "build directory for the generated manifest")
	rootCmd.Flags().StringVarP(&backendName, "backend", "b", "ninja", "target backend")
	rootCmd.Flags().BoolVar(&listBackends, "list-backends", false, "list available backends")
	rootCmd.Flags().BoolVarP(&optimize, "optimize", "O", true, "run the MIR optimization pass suite")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST and exit")
	rootCmd.Flags().BoolVar(&dumpHIR, "dump-hir", false, "dump the lowered HIR and exit")
	rootCmd.Flags().BoolVar(&dumpMIR, "dump-mir", false, "dump the optimized MIR and exit")
	rootCmd.Flags().StringVar(&vizFile, "viz", "", "write the MIR control-flow graph in DOT format")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(diag.ExitInternalInvariant)
	}
}

func compile(sourceFile string) error {
	if debug {
		fmt.Printf("Compiling %s...\n", sourceFile)
	}

	src, err := os.ReadFile(sourceFile)
	if err != nil {
		return &diag.IOFailure{Op: "read", Path: sourceFile, Err: err}
	}

	projectName := projectNameFrom(sourceFile)

	block, err := parser.ParseString(projectName, string(src))
	if err != nil {
		return err
	}
	if dumpAST {
		fmt.Println(block.Render())
		return nil
	}

	hirList, err := lower.ASTToHIR(block)
	if err != nil {
		return err
	}
	if dumpHIR {
		fmt.Printf("%+v\n", hirList)
		return nil
	}

	graph, err := lower.HIRToMIR(hirList)
	if err != nil {
		return err
	}

	sourceRoot, err := filepath.Abs(filepath.Dir(sourceFile))
	if err != nil {
		return &diag.IOFailure{Op: "resolve", Path: sourceFile, Err: err}
	}
	buildRoot, err := filepath.Abs(buildDir)
	if err != nil {
		return &diag.IOFailure{Op: "resolve", Path: buildDir, Err: err}
	}

	state := mir.NewPersistentState(projectName, sourceRoot, buildRoot)
	state.Toolchains = toolchain.BuildToolchains()
	state.Machines = mir.PerMachine[mir.MachineInfo]{BuildVal: toolchain.DetectBuildMachine()}

	if optimize {
		driver := passes.NewDriver(
			&passes.MachineLower{Machines: state.Machines},
			&passes.InsertCompilers{Toolchains: state.Toolchains},
			passes.Flatten{},
			&passes.InsertTargets{SourceRoot: state.SourceRoot, BuildRoot: state.BuildRoot},
			passes.ConstantPropagation{},
			passes.ValueNumbering{},
			passes.BranchPruning{},
			passes.JoinBlocks{},
		)
		if err := driver.Run(graph); err != nil {
			return err
		}
		if debug {
			fmt.Println("Optimization passes converged")
		}
	}

	if dumpMIR {
		dumpGraph(graph)
		return nil
	}

	if vizFile != "" {
		if err := writeViz(graph, vizFile); err != nil {
			return err
		}
	}

	backend, ok := codegen.GetBackend(backendName)
	if !ok {
		return &codegen.UnknownBackend{Name: backendName}
	}

	manifest, err := backend.Emit(graph, state)
	if err != nil {
		return err
	}

	if err := fsutil.EnsureBuildDir(buildRoot); err != nil {
		return err
	}

	outPath := filepath.Join(buildRoot, "build.ninja")
	if err := os.WriteFile(outPath, []byte(manifest), 0o644); err != nil {
		return &diag.IOFailure{Op: "write", Path: outPath, Err: err}
	}

	if debug {
		fmt.Printf("Wrote %s\n", outPath)
	}
	return nil
}

func projectNameFrom(sourceFile string) string {
	base := filepath.Base(filepath.Dir(sourceFile))
	if base == "." || base == "/" {
		return "project"
	}
	return base
}

func dumpGraph(graph *mir.Graph) {
	ids := map[*mir.BasicBlock]int{}
	n := 0
	graph.Entry.Walk(func(block *mir.BasicBlock) {
		ids[block] = n
		n++
	})
	graph.Entry.Walk(func(block *mir.BasicBlock) {
		fmt.Printf("block %d:\n", ids[block])
		for _, inst := range block.Instructions {
			fmt.Printf("  %s\n", mir.Render(inst))
		}
		if block.Condition != nil {
			fmt.Printf("  if %s -> true:%d false:%d\n", mir.Render(block.Condition.Cond),
				ids[block.Condition.TrueBlock], ids[block.Condition.FalseBlock])
		}
	})
}

func writeViz(graph *mir.Graph, path string) error {
	var lines []string
	lines = append(lines, "digraph mir {")
	id := 0
	seen := make(map[*mir.BasicBlock]int)
	var visit func(b *mir.BasicBlock) int
	visit = func(b *mir.BasicBlock) int {
		if b == nil {
			return -1
		}
		if existing, ok := seen[b]; ok {
			return existing
		}
		mine := id
		id++
		seen[b] = mine
		lines = append(lines, fmt.Sprintf("  b%d [label=\"block %d\"];", mine, mine))
		for _, succ := range b.Successors() {
			s := visit(succ)
			lines = append(lines, fmt.Sprintf("  b%d -> b%d;", mine, s))
		}
		return mine
	}
	visit(graph.Entry)
	lines = append(lines, "}")

	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return &diag.IOFailure{Op: "write", Path: path, Err: err}
	}
	return nil
}
