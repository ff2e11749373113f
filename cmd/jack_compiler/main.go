package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hmny-dev/n2t-core/pkg/jack"
	"github.com/hmny-dev/n2t-core/pkg/vm"
	"github.com/teris-io/cli"
)

var Description = strings.ReplaceAll(`
The Jack Compiler compiles programs (composed of multiple classes/files) written in
the Jack language into VM modules that can be further elaborated. The Jack language
is a higher-level OOP language tailored for use with the Hack computer architecture.
`, "\n", " ")

var JackCompiler = cli.New(Description).
	WithArg(cli.NewArg("source", "The directory of .jack source files to compile")).
	WithArg(cli.NewArg("build", "The directory to write the compiled .vm files into")).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 2 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}
	sourceDir, buildDir := args[0], args[1]

	sources, err := filepath.Glob(filepath.Join(sourceDir, "*.jack"))
	if err != nil {
		fmt.Printf("ERROR: Unable to list '.jack' files: %s\n", err)
		return -1
	}
	sort.Strings(sources)
	if len(sources) == 0 {
		fmt.Printf("ERROR: No '.jack' files found in %s\n", sourceDir)
		return -1
	}

	program := vm.Program{}
	for _, source := range sources {
		content, err := os.ReadFile(source)
		if err != nil {
			fmt.Printf("ERROR: Unable to open input file: %s\n", err)
			return -1
		}

		engine := jack.NewCompilationEngine(jack.NewTokenizer(string(content)))
		module, err := engine.CompileClass()
		if err != nil {
			fmt.Printf("ERROR: Unable to compile class '%s': %s\n", source, err)
			return -1
		}

		className := strings.TrimSuffix(filepath.Base(source), ".jack")
		program[className] = module
	}

	codegen := vm.NewCodeGenerator(program)
	compiled, err := codegen.Generate()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'codegen' pass: %s\n", err)
		return -1
	}

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		fmt.Printf("ERROR: Unable to create build directory: %s\n", err)
		return -1
	}

	written := make([]string, 0, len(compiled))
	for className, lines := range compiled {
		outPath := filepath.Join(buildDir, className+".vm")
		if err := os.WriteFile(outPath, []byte(strings.Join(lines, "\r")), 0644); err != nil {
			fmt.Printf("ERROR: Unable to write output file: %s\n", err)
			for _, path := range written {
				os.Remove(path)
			}
			return -1
		}
		written = append(written, outPath)
	}

	return 0
}

func main() { os.Exit(JackCompiler.Run(os.Args, os.Stdout)) }
