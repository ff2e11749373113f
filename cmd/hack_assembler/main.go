package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/hmny-dev/n2t-core/pkg/asm"
	"github.com/hmny-dev/n2t-core/pkg/hack"
	"github.com/teris-io/cli"
)

var Description = strings.ReplaceAll(`
The Hack Assembler takes assembly language code written in the Hack assembly language
and translates it into machine code that can be executed by the Hack computer. The process
involves parsing the assembly code, resolving symbols, and generating machine code.
`, "\n", " ")

var HackAssembler = cli.New(Description).
	WithArg(cli.NewArg("filestem", "The assembler program to compile, without extension")).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	filestem := args[0]

	input, err := os.ReadFile(filestem + ".asm")
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}

	// Parses the input file content and extracts an AST (as an 'asm.Program') from it.
	parser := asm.NewParser(bytes.NewReader(input))
	asmProgram, err := parser.Parse()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'parsing' pass: %s\n", err)
		return -1
	}

	// Pass 1: converts the Asm program to its Hack counterpart, binding labels.
	lowerer := asm.NewLowerer(asmProgram)
	hackProgram, table, err := lowerer.Lower()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'lowering' pass: %s\n", err)
		return -1
	}

	// Pass 2: binds variables and renders each instruction to its 16-bit binary form.
	codegen := hack.NewCodeGenerator(hackProgram, table)
	compiled, err := codegen.Generate()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'codegen' pass: %s\n", err)
		return -1
	}

	// The whole artifact is held in memory before any output file is touched, so a
	// fatal error above never leaves a partial '.hack' file behind.
	output, err := os.Create(filestem + ".hack")
	if err != nil {
		fmt.Printf("ERROR: Unable to open output file: %s\n", err)
		return -1
	}
	defer output.Close()

	if _, err := output.WriteString(strings.Join(compiled, "\r")); err != nil {
		fmt.Printf("ERROR: Unable to write output file: %s\n", err)
		os.Remove(filestem + ".hack")
		return -1
	}

	return 0
}

func main() { os.Exit(HackAssembler.Run(os.Args, os.Stdout)) }
