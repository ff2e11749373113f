package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hmny-dev/n2t-core/pkg/asm"
	"github.com/hmny-dev/n2t-core/pkg/hack"
	"github.com/hmny-dev/n2t-core/pkg/vm"
	"github.com/teris-io/cli"
)

var Description = strings.ReplaceAll(`
The VM Translator translates programs (composed of multiple modules/files) written in
the VM language into Hack assembly code that can be further elaborated. The VM language
is a higher-level (bytecode-like) language tailored for use with the Hack computer arch.
`, "\n", " ")

var VmTranslator = cli.New(Description).
	WithArg(cli.NewArg("path", "A .vm file, or a directory of .vm files, to translate")).
	WithArg(cli.NewArg("target", "The target name for the compiled .asm/.hack files").
		AsOptional().WithType(cli.TypeString)).
	WithOption(cli.NewOption("bootstrap", "Forces the bootstrap sequence for a single-file translation").
		WithType(cli.TypeBool)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	info, err := os.Stat(args[0])
	if err != nil {
		fmt.Printf("ERROR: Unable to open input path: %s\n", err)
		return -1
	}

	var dir string
	var inputs []string
	if info.IsDir() {
		dir = args[0]
		matches, err := filepath.Glob(filepath.Join(dir, "*.vm"))
		if err != nil {
			fmt.Printf("ERROR: Unable to list '.vm' files: %s\n", err)
			return -1
		}
		sort.Strings(matches)
		inputs = matches
	} else {
		dir = filepath.Dir(args[0])
		inputs = []string{args[0]}
	}

	if len(inputs) == 0 {
		fmt.Printf("ERROR: No '.vm' files found at %s\n", args[0])
		return -1
	}

	target := strings.TrimSuffix(filepath.Base(inputs[0]), ".vm")
	if len(args) > 1 {
		target = args[1]
	}

	program := vm.Program{}
	for _, input := range inputs {
		content, err := os.ReadFile(input)
		if err != nil {
			fmt.Printf("ERROR: Unable to open input file: %s\n", err)
			return -1
		}

		parser := vm.NewParser(bytes.NewReader(content))
		module, err := parser.Parse()
		if err != nil {
			fmt.Printf("ERROR: Unable to complete 'parsing' pass for %s: %s\n", input, err)
			return -1
		}
		program[strings.TrimSuffix(filepath.Base(input), ".vm")] = module
	}

	// A directory is always a multi-module compilation unit and gets the bootstrap; a
	// lone file only does when the caller asks for it explicitly via '--bootstrap'.
	_, forceBootstrap := options["bootstrap"]
	bootstrap := info.IsDir() || forceBootstrap

	lowerer := vm.NewLowerer()
	asmProgram, err := lowerer.LowerWithBootstrap(program, bootstrap)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'lowering' pass: %s\n", err)
		return -1
	}

	asmCodegen := asm.NewCodeGenerator(asmProgram)
	asmLines, err := asmCodegen.Generate()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'codegen' pass: %s\n", err)
		return -1
	}

	asmLowerer := asm.NewLowerer(asmProgram)
	hackProgram, table, err := asmLowerer.Lower()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'asm-to-hack lowering' pass: %s\n", err)
		return -1
	}

	hackCodegen := hack.NewCodeGenerator(hackProgram, table)
	hackLines, err := hackCodegen.Generate()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'hack codegen' pass: %s\n", err)
		return -1
	}

	asmPath := filepath.Join(dir, target+".asm")
	hackPath := filepath.Join(dir, target+".hack")

	if err := os.WriteFile(asmPath, []byte(strings.Join(asmLines, "\r")), 0644); err != nil {
		fmt.Printf("ERROR: Unable to write output file: %s\n", err)
		return -1
	}
	if err := os.WriteFile(hackPath, []byte(strings.Join(hackLines, "\r")), 0644); err != nil {
		fmt.Printf("ERROR: Unable to write output file: %s\n", err)
		os.Remove(asmPath)
		return -1
	}

	return 0
}

func main() { os.Exit(VmTranslator.Run(os.Args, os.Stdout)) }
