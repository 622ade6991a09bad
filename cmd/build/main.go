// Command build resolves one quiz definition against the bank and emits
// a single artifact: a paper test (markdown, latex, typst) or an import
// package for the grading platform (qti).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"quizbank/internal/assemble"
	"quizbank/internal/bank"
	"quizbank/internal/config"
	"quizbank/internal/domain"
	"quizbank/internal/logger"
	"quizbank/internal/qti"
	"quizbank/internal/render"
	"quizbank/internal/validation"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 2
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 2
	}
	defer logger.Sync()

	var (
		bankDir = flag.String("bank", cfg.Bank.Dir, "root directory of the question bank")
		format  = flag.String("format", "markdown", "output format: markdown|latex|typst|qti")
		outPath = flag.String("out", "", "output path for the artifact")
		seed    = flag.Int64("seed", cfg.Build.Seed, "random seed for pick/shuffle")
		title   = flag.String("title", "", "override quiz title")
		compile = flag.Bool("compile", false, "hand the artifact to the external compiler (latex, typst)")
	)
	flag.Parse()

	// Flags must precede the quiz file: flag parsing stops at the first
	// positional argument.
	if flag.NArg() != 1 || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: build -out PATH [flags] QUIZ_FILE")
		flag.PrintDefaults()
		return 2
	}
	quizPath := flag.Arg(0)

	def, err := bank.LoadQuizFile(quizPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *title != "" {
		def.Title = *title
	}

	records, err := bank.LoadDir(*bankDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx := context.Background()

	// Validation gates every build: an invalid bank never reaches the
	// assembler, and every violation is reported before the run fails.
	result := validation.ValidateBatch(ctx, records)
	if !result.OK() {
		for _, r := range result.Invalid() {
			fmt.Fprintf(os.Stderr, "%s: FAIL\n", r.Source)
			for _, v := range r.Errors {
				fmt.Fprintf(os.Stderr, "  - %s\n", v.Error())
			}
		}
		logger.Get().Error("Bank validation failed",
			zap.Int("invalid", result.InvalidCount()))
		return 1
	}

	store, err := bank.NewStore(records)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	items, err := assemble.Assemble(def, store, *seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var data []byte
	switch *format {
	case "markdown", "md":
		data, err = render.Markdown{}.Render(def, items)
	case "latex", "tex":
		data, err = render.LaTeX{}.Render(def, items)
	case "typst", "typ":
		data, err = render.Typst{}.Render(def, items)
	case "qti":
		data, err = qti.NewBuilder().BuildPackage(quizTitle(def), items)
	default:
		fmt.Fprintf(os.Stderr, "unknown format: %s\n", *format)
		return 2
	}
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.ErrEncodingConsistency {
			// Internal defect, not bad input: make that explicit.
			logger.Get().Error("Encoding consistency failure", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := render.WriteArtifact(*outPath, data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *compile {
		var compileErr error
		switch *format {
		case "latex", "tex":
			compileErr = render.Compile(ctx, cfg.Tools.LaTeXMk, *outPath, "-pdf", "-interaction=nonstopmode")
		case "typst", "typ":
			compileErr = render.Compile(ctx, cfg.Tools.Typst, *outPath, "compile")
		default:
			fmt.Fprintf(os.Stderr, "-compile is not supported for format %s\n", *format)
			return 2
		}
		if compileErr != nil {
			logger.Get().Error("External compiler failed", zap.Error(compileErr))
			fmt.Fprintln(os.Stderr, compileErr)
			return 1
		}
	}

	logger.Get().Info("Wrote artifact",
		zap.String("quiz", def.ID),
		zap.String("format", *format),
		zap.String("out", *outPath),
		zap.Int("questions", len(items)),
	)
	return 0
}

func quizTitle(def domain.QuizDefinition) string {
	if def.Title != "" {
		return def.Title
	}
	if def.ID != "" {
		return def.ID
	}
	return "Assessment"
}
