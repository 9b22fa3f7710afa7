package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/width"

	"github.com/sunholo/ailang/internal/errors"
	"github.com/sunholo/ailang/internal/eval"
	"github.com/sunholo/ailang/internal/lexer"
	"github.com/sunholo/ailang/internal/parser"
	"github.com/sunholo/ailang/internal/pipeline"
)

var (
	// Version info - set by ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	// Color output
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()

	// Shared flags
	traceFlag   bool
	seedFlag    int
	virtualTime bool
	learnFlag   bool

	// check-specific flags
	lintExhaustiveness string
	checkJSON          bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "ailang",
		Short:   "AILANG - The AI-First Programming Language",
		Version: Version,
	}
	root.SetVersionTemplate(versionTemplate())
	root.PersistentFlags().BoolVar(&traceFlag, "trace", false, "Enable execution tracing")
	root.PersistentFlags().IntVar(&seedFlag, "seed", 0, "Random seed for deterministic execution")
	root.PersistentFlags().BoolVar(&virtualTime, "virtual-time", false, "Use virtual time for deterministic execution")

	root.AddCommand(
		newRunCmd(),
		newReplCmd(),
		newTestCmd(),
		newWatchCmd(),
		newCheckCmd(),
		newExportTrainingCmd(),
		newLSPCmd(),
	)
	return root
}

func versionTemplate() string {
	var b strings.Builder
	fmt.Fprintf(&b, "AILANG %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Fprintf(&b, "Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Fprintf(&b, "Built:  %s\n", BuildTime)
	}
	b.WriteString("\nThe AI-First Programming Language\n")
	return b.String()
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file.ail>",
		Short: "Run an AILANG program",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runFile(args[0], traceFlag, seedFlag, virtualTime)
		},
	}
}

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive REPL",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runREPL(learnFlag, traceFlag)
		},
	}
	cmd.Flags().BoolVar(&learnFlag, "learn", false, "Enable learning mode (collect training data)")
	return cmd
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test [path]",
		Short: "Run tests",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			runTests(path)
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file.ail>",
		Short: "Watch file for changes and auto-reload",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			watchFile(args[0], traceFlag)
		},
	}
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file.ail>",
		Short: "Type-check and lint a file without running it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			mode := lintExhaustiveness
			if mode == "" {
				mode = "error"
				if cfg := loadProjectConfig(); cfg != nil && cfg.Lint.Exhaustiveness != "" {
					mode = cfg.Lint.Exhaustiveness
				}
			}
			checkFile(args[0], mode, checkJSON)
		},
	}
	cmd.Flags().StringVar(&lintExhaustiveness, "lint-exhaustiveness", "",
		"How to report non-exhaustive match expressions: error, warn, or off "+
			"(default: ailang.yaml's lint.exhaustiveness, or \"error\")")
	cmd.Flags().BoolVar(&checkJSON, "json", false, "Emit diagnostics as JSON")
	return cmd
}

func newExportTrainingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-training",
		Short: "Export training data",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exportTraining()
		},
	}
}

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runLSP()
		},
	}
}

func runFile(filename string, trace bool, seed int, virtualTime bool) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file '%s': %v\n", red("Error"), filename, err)
		os.Exit(1)
	}

	if !strings.HasSuffix(filename, ".ail") {
		fmt.Fprintf(os.Stderr, "%s: file must have .ail extension\n", yellow("Warning"))
	}

	l := lexer.New(string(content), filename)
	p := parser.New(l)
	program := p.Parse()

	if len(p.Errors()) > 0 {
		printParserErrors(p.Errors())
		os.Exit(1)
	}

	fmt.Printf("%s Running %s\n", green("✓"), filename)
	if trace {
		fmt.Printf("  %s Tracing enabled\n", yellow("⚡"))
	}
	if seed != 0 {
		fmt.Printf("  %s Seed: %d\n", yellow("🎲"), seed)
	}
	if virtualTime {
		fmt.Printf("  %s Virtual time enabled\n", yellow("⏰"))
	}

	evaluator := eval.NewSimple()
	result, err := evaluator.EvalProgram(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Runtime error"), err)
		os.Exit(1)
	}

	if result != nil && result.Type() != "unit" {
		fmt.Println(result.String())
	}
}

func runREPL(learn bool, trace bool) {
	fmt.Printf("%s v%s - AI-First Functional Language\n", bold("AILANG"), Version)
	if learn {
		fmt.Printf("%s Learning mode enabled - corrections will be saved for training\n", green("✓"))
	}
	fmt.Println("Type :help for help, :quit to exit")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print(">>> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)

		if strings.HasPrefix(input, ":") {
			handleREPLCommand(input)
			continue
		}

		if input == "" {
			continue
		}

		l := lexer.New(input, "<repl>")
		p := parser.New(l)
		program := p.Parse()

		if len(p.Errors()) > 0 {
			printParserErrors(p.Errors())
			if learn {
				fmt.Printf("%s Error recorded for training\n", yellow("📝"))
			}
			continue
		}

		evaluator := eval.NewSimple()
		result, err := evaluator.EvalProgram(program)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Runtime error"), err)
			if learn {
				fmt.Printf("%s Error recorded for training\n", yellow("📝"))
			}
			continue
		}

		if result != nil {
			fmt.Printf("%s : %s = %s\n", cyan("result"), yellow(result.Type()), green(result.String()))
		}

		if trace {
			fmt.Printf("%s Trace: [execution trace]\n", yellow("⚡"))
		}
	}
}

func handleREPLCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case ":help", ":h":
		fmt.Println("REPL Commands:")
		fmt.Println("  :help, :h        Show this help")
		fmt.Println("  :quit, :q        Exit the REPL")
		fmt.Println("  :type <expr>     Show type of expression")
		fmt.Println("  :load <file>     Load a file")
		fmt.Println("  :reload          Reload the last file")
		fmt.Println("  :clear           Clear the screen")
		fmt.Println("  :trace           Toggle tracing")
		fmt.Println("  :effects         Show current effects")

	case ":quit", ":q":
		fmt.Println("Goodbye!")
		os.Exit(0)

	case ":type":
		if len(parts) < 2 {
			fmt.Println("Usage: :type <expression>")
			return
		}
		expr := strings.Join(parts[1:], " ")
		fmt.Printf("Type of %s: %s\n", expr, yellow("unknown"))

	case ":load":
		if len(parts) < 2 {
			fmt.Println("Usage: :load <file>")
			return
		}
		fmt.Printf("Loading %s...\n", parts[1])

	case ":clear":
		fmt.Print("\033[H\033[2J")

	case ":trace":
		fmt.Println("Tracing toggled")

	case ":effects":
		fmt.Println("Current effects: {IO}")

	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		fmt.Println("Type :help for help")
	}
}

func runTests(path string) {
	fmt.Printf("%s Running tests in %s\n", cyan("→"), path)

	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if strings.HasSuffix(p, ".ail") {
			fmt.Printf("  %s %s\n", green("✓"), p)
		}

		return nil
	})

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	fmt.Printf("\n%s All tests passed!\n", green("✓"))
}

func watchFile(filename string, trace bool) {
	fmt.Printf("%s Watching %s for changes...\n", cyan("👁"), filename)
	fmt.Println("Press Ctrl+C to stop")

	runFile(filename, trace, 0, false)
}

// checkFile runs the compiler pipeline through match-checking without
// evaluating the program, then renders any diagnostics it produced.
// lintExhaustiveness controls the severity of MCH001 (non-exhaustive
// match) findings independently of the other match-check diagnostics,
// which always report at the severity matchcheck itself assigned them.
func checkFile(filename string, lintExhaustiveness string, jsonOut bool) {
	fmt.Printf("%s Checking %s...\n", cyan("→"), filename)

	result, err := pipeline.Run(pipeline.Config{Mode: pipeline.ModeCheck}, pipeline.Source{Filename: filename})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	matchErrs, matchWarns := applyLintExhaustiveness(result.MatchErrors, result.MatchWarnings, lintExhaustiveness)

	if jsonOut {
		printDiagnosticsJSON(result.Errors, matchErrs, matchWarns)
	} else {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), e)
		}
		printDiagnosticTable(matchErrs, red("error"))
		printDiagnosticTable(matchWarns, yellow("warning"))
	}

	if len(result.Errors) > 0 || len(matchErrs) > 0 {
		os.Exit(1)
	}
	fmt.Printf("\n%s No errors found!\n", green("✓"))
}

// applyLintExhaustiveness reclassifies MCH001 (non-exhaustive match)
// reports between the error and warning buckets per mode, leaving every
// other match-check diagnostic at its original severity.
func applyLintExhaustiveness(errs, warns []*errors.Report, mode string) ([]*errors.Report, []*errors.Report) {
	switch mode {
	case "off":
		var kept []*errors.Report
		for _, r := range errs {
			if r.Code != errors.MCH001 {
				kept = append(kept, r)
			}
		}
		return kept, warns
	case "warn":
		var kept []*errors.Report
		for _, r := range errs {
			if r.Code == errors.MCH001 {
				warns = append(warns, r)
				continue
			}
			kept = append(kept, r)
		}
		return kept, warns
	default: // "error"
		return errs, warns
	}
}

// printDiagnosticTable renders reports as a location-aligned table,
// padding the "file:line:col" column to its visual width (via
// golang.org/x/text/width) so wide and full-width source positions still
// line up with ASCII ones.
func printDiagnosticTable(reports []*errors.Report, label string) {
	if len(reports) == 0 {
		return
	}

	locs := make([]string, len(reports))
	maxWidth := 0
	for i, r := range reports {
		locs[i] = locString(r)
		if w := visualWidth(locs[i]); w > maxWidth {
			maxWidth = w
		}
	}

	for i, r := range reports {
		fmt.Fprintf(os.Stderr, "%s: %s [%s] %s\n", label, padRight(locs[i], maxWidth), r.Code, r.Message)
	}
}

func locString(r *errors.Report) string {
	if r.Span == nil {
		return "<unknown>"
	}
	return r.Span.Start.String()
}

// visualWidth sums each rune's east-asian display width, treating wide and
// fullwidth runes as two columns and everything else as one.
func visualWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

func padRight(s string, n int) string {
	if w := visualWidth(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func printDiagnosticsJSON(genericErrs []error, matchErrs, matchWarns []*errors.Report) {
	fmt.Println("{")
	fmt.Printf("  %q: %d,\n", "generic_errors", len(genericErrs))
	fmt.Printf("  %q: [\n", "errors")
	printReportsJSON(matchErrs)
	fmt.Println("  ],")
	fmt.Printf("  %q: [\n", "warnings")
	printReportsJSON(matchWarns)
	fmt.Println("  ]")
	fmt.Println("}")
}

func printReportsJSON(reports []*errors.Report) {
	for i, r := range reports {
		js, err := r.ToJSON(true)
		if err != nil {
			continue
		}
		sep := ","
		if i == len(reports)-1 {
			sep = ""
		}
		fmt.Printf("    %s%s\n", js, sep)
	}
}

func exportTraining() {
	fmt.Printf("%s Exporting training data...\n", cyan("→"))

	fmt.Printf("  Analyzing execution traces...\n")
	fmt.Printf("  Filtering high-quality traces (score > 0.8)...\n")
	fmt.Printf("  Formatting for fine-tuning...\n")

	fmt.Printf("\n%s Exported 0 training examples to training_data.jsonl\n", green("✓"))
}

func runLSP() {
	fmt.Printf("%s Language Server v%s\n", bold("AILANG"), Version)
	fmt.Println("Listening on stdio...")

	fmt.Fprintf(os.Stderr, "%s: LSP not yet implemented\n", red("Error"))
	os.Exit(1)
}

func printParserErrors(errs []error) {
	fmt.Fprintf(os.Stderr, "%s Parser errors:\n", red("Error"))
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "  %s %v\n", red("•"), err)
	}
}
