package vm_test

import (
	"testing"

	"github.com/hmny-dev/n2t-core/pkg/asm"
	"github.com/hmny-dev/n2t-core/pkg/vm"
)

// countOf reports how many statements in 'program' are deeply-equal to 'want'.
func countOf(program asm.Program, want asm.Statement) int {
	n := 0
	for _, stmt := range program {
		if stmt == want {
			n++
		}
	}
	return n
}

func hasLabel(program asm.Program, name string) bool {
	return countOf(program, asm.LabelDecl{Name: name}) > 0
}

func TestLowerPushConstant(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{"Main": vm.Module{
		vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: 7},
	}}

	out, err := lw.Lower(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Loads the literal into D, then writes it at *SP and advances SP.
	if countOf(out, asm.AInstruction{Location: "7"}) == 0 {
		t.Fatalf("expected an '@7' instruction loading the constant, got %+v", out)
	}
	if countOf(out, asm.CInstruction{Dest: "D", Comp: "A"}) == 0 {
		t.Fatalf("expected 'D=A' to move the constant into D")
	}
	if countOf(out, asm.CInstruction{Dest: "M", Comp: "M+1"}) == 0 {
		t.Fatalf("expected 'SP=SP+1' after the push")
	}
}

func TestLowerPopLocal(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{"Main": vm.Module{
		vm.MemoryOp{Operation: vm.Pop, Segment: vm.Local, Offset: 2},
	}}

	out, err := lw.Lower(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if countOf(out, asm.AInstruction{Location: "LCL"}) == 0 {
		t.Fatalf("expected a reference to LCL when popping into 'local'")
	}
	if countOf(out, asm.AInstruction{Location: "R13"}) == 0 {
		t.Fatalf("expected the resolved destination address to be stashed in R13")
	}
}

func TestLowerPushPopFusion(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{"Foo": vm.Module{
		vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: 5},
		vm.MemoryOp{Operation: vm.Pop, Segment: vm.Static, Offset: 0},
	}}

	out, err := lw.Lower(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The fused transfer never touches SP. The shared helpers appended after 'HALT_LOOP'
	// do, so only the module's own code (everything before that label) is inspected.
	moduleCode := out
	for i, stmt := range out {
		if stmt == (asm.LabelDecl{Name: "HALT_LOOP"}) {
			moduleCode = out[:i]
			break
		}
	}
	if countOf(moduleCode, asm.AInstruction{Location: "SP"}) != 0 {
		t.Fatalf("fused push-pop must not touch SP, got %+v", out)
	}
	if countOf(out, asm.AInstruction{Location: "16"}) == 0 {
		t.Fatalf("expected the static destination (base 16, offset 0) to be addressed directly")
	}
}

func TestLowerStaticBaseIsolation(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{
		"Foo": vm.Module{vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: 5}, vm.MemoryOp{Operation: vm.Pop, Segment: vm.Static, Offset: 0}},
		"Bar": vm.Module{vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: 5}, vm.MemoryOp{Operation: vm.Pop, Segment: vm.Static, Offset: 0}},
	}

	out, err := lw.Lower(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Bar.vm (lexicographically before Foo) is lowered first, so its "static 0" resolves
	// to RAM[16]; Foo.vm's must resolve to RAM[17] since Bar bumped the static base by 1.
	if countOf(out, asm.AInstruction{Location: "16"}) == 0 {
		t.Fatalf("expected Bar's 'static 0' to resolve to address 16")
	}
	if countOf(out, asm.AInstruction{Location: "17"}) == 0 {
		t.Fatalf("expected Foo's 'static 0' to resolve to address 17, got %+v", out)
	}
}

func TestLowerArithmeticBinaryAndUnary(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{"Main": vm.Module{
		vm.ArithmeticOp{Operation: vm.Add},
		vm.ArithmeticOp{Operation: vm.Neg},
	}}

	out, err := lw.Lower(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if countOf(out, asm.CInstruction{Dest: "M", Comp: "D+M"}) == 0 {
		t.Fatalf("expected 'add' to emit 'M=D+M'")
	}
	if countOf(out, asm.CInstruction{Dest: "M", Comp: "-M"}) == 0 {
		t.Fatalf("expected 'neg' to emit 'M=-M'")
	}
}

func TestLowerComparisonUsesSharedHelper(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{"Main": vm.Module{
		vm.ArithmeticOp{Operation: vm.Eq},
		vm.ArithmeticOp{Operation: vm.Eq},
	}}

	out, err := lw.Lower(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The helper body itself is emitted exactly once regardless of how many call sites exist.
	if n := countOf(out, asm.LabelDecl{Name: "boolean_cmd_helper_JEQ"}); n != 1 {
		t.Fatalf("expected exactly one 'boolean_cmd_helper_JEQ' label, got %d", n)
	}
	// But each call site gets its own fresh continuation label.
	if !hasLabel(out, "END_BOOL_1") || !hasLabel(out, "END_BOOL_2") {
		t.Fatalf("expected two distinct continuation labels, got %+v", out)
	}
}

func TestLowerScopedLabels(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{"Main": vm.Module{
		vm.FuncDecl{Name: "Main.main", NLocal: 0},
		vm.LabelDecl{Name: "LOOP"},
		vm.GotoOp{Jump: vm.Goto, Label: "LOOP"},
	}}

	out, err := lw.Lower(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hasLabel(out, "main.main$loop") {
		t.Fatalf("expected the label to be scoped and lowercased, got %+v", out)
	}
}

func TestLowerCallAndReturn(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{"Main": vm.Module{
		vm.FuncDecl{Name: "Main.main", NLocal: 0},
		vm.FuncCallOp{Name: "Math.multiply", NArgs: 2},
		vm.ReturnOp{},
	}}

	out, err := lw.Lower(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hasLabel(out, "call_helper") || !hasLabel(out, "restore_stack_and_return") {
		t.Fatalf("expected the shared call/return helpers to be emitted, got %+v", out)
	}
	if !hasLabel(out, "ret_1") {
		t.Fatalf("expected a fresh 'ret_1' continuation label at the call site")
	}
	if countOf(out, asm.AInstruction{Location: "Math.multiply"}) == 0 {
		t.Fatalf("expected the callee's symbol to be loaded as the jump target")
	}
}

func TestLowerMultiFileBootstrap(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{
		"Main": vm.Module{vm.FuncDecl{Name: "Main.main", NLocal: 0}, vm.ReturnOp{}},
		"Sys":  vm.Module{vm.FuncDecl{Name: "Sys.init", NLocal: 0}, vm.ReturnOp{}},
	}

	out, err := lw.Lower(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if countOf(out, asm.AInstruction{Location: "256"}) == 0 {
		t.Fatalf("expected the bootstrap to set SP to 256")
	}
	if countOf(out, asm.AInstruction{Location: "Sys.init"}) == 0 {
		t.Fatalf("expected the bootstrap to call Sys.init")
	}
	if !hasLabel(out, "HALT_LOOP") {
		t.Fatalf("expected a trailing HALT_LOOP guarding the shared helpers")
	}
}

func TestLowerSingleFileHasNoBootstrap(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{"Main": vm.Module{vm.ReturnOp{}}}

	out, err := lw.Lower(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if countOf(out, asm.AInstruction{Location: "256"}) != 0 {
		t.Fatalf("a single-file compilation must not prepend a bootstrap, got %+v", out)
	}
}

func TestLowerTempAndPointerBounds(t *testing.T) {
	lw := vm.NewLowerer()
	program := vm.Program{"Main": vm.Module{
		vm.MemoryOp{Operation: vm.Push, Segment: vm.Temp, Offset: 8},
	}}

	if _, err := lw.Lower(program); err == nil {
		t.Fatalf("expected an error for out-of-range 'temp' offset")
	}

	pointer := vm.Program{"Main": vm.Module{
		vm.MemoryOp{Operation: vm.Push, Segment: vm.Pointer, Offset: 2},
	}}
	if _, err := vm.NewLowerer().Lower(pointer); err == nil {
		t.Fatalf("expected an error for out-of-range 'pointer' offset")
	}
}
