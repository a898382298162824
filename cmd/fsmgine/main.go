// Command fsmgine generates code and diagrams from transition-rule
// definitions and interactively simulates machines defined in YAML.
//
// Usage:
//
//	fsmgine gen -mode go -pkg turnstile -o turnstile_gen.go source.go
//	fsmgine gen -mode mermaid -fence source.go
//	fsmgine sim -config turnstile.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/amp-labs/fsmgine/codegen"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error

	switch os.Args[1] {
	case "gen":
		err = runGen(os.Args[2:])
	case "sim":
		err = runSim(os.Args[2:])
	case "help", "-h", "--help":
		usage()

		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `fsmgine - state machine code generation and simulation

Commands:
  gen   Generate Go wiring, Graphviz DOT or Mermaid from definition blocks.
  sim   Interactively drive a machine defined in a YAML config.

Run "fsmgine <command> -h" for command flags.
`)
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	mode := fs.String("mode", "go", "output mode: go, dot, mermaid or expand")
	pkg := fs.String("pkg", "main", "package clause of generated Go output")
	out := fs.String("o", "", "output file (default stdout)")
	direction := fs.String("dir", "LR", "diagram layout direction")
	fence := fs.Bool("fence", false, "wrap Mermaid output in a markdown code fence")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("gen expects exactly one source file, got %d", fs.NArg())
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	w := os.Stdout

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()

		w = f
	}

	diagram := codegen.DefaultDiagramOptions()
	diagram.Direction = *direction
	diagram.MarkdownFence = *fence

	return codegen.ProcessSource(in, w, codegen.SourceOptions{
		Mode:    codegen.Mode(*mode),
		Package: *pkg,
		Diagram: diagram,
	})
}
