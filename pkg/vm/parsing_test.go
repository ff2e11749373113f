package vm_test

import (
	"strings"
	"testing"

	"github.com/hmny-dev/n2t-core/pkg/vm"
)

func TestParseModule(t *testing.T) {
	source := strings.Join([]string{
		"// comment",
		"push constant 7",
		"push constant 8",
		"add",
		"label LOOP",
		"if-goto LOOP",
		"function Main.main 2",
		"call Math.multiply 2",
		"return",
	}, "\r")

	parser := vm.NewParser(strings.NewReader(source))
	module, err := parser.Parse()
	if err != nil {
		t.Fatalf("unexpected error parsing a well-formed module: %v", err)
	}

	if len(module) != 8 {
		t.Fatalf("expected 8 operations (the comment is skipped), got %d: %+v", len(module), module)
	}

	if got, ok := module[0].(vm.MemoryOp); !ok || got.Operation != vm.Push || got.Segment != vm.Constant || got.Offset != 7 {
		t.Fatalf("expected 'push constant 7' to parse correctly, got %+v", module[0])
	}
	if got, ok := module[2].(vm.ArithmeticOp); !ok || got.Operation != vm.Add {
		t.Fatalf("expected 'add' to parse as ArithmeticOp{Add}, got %+v", module[2])
	}
	if got, ok := module[3].(vm.LabelDecl); !ok || got.Name != "LOOP" {
		t.Fatalf("expected 'label LOOP' to parse as LabelDecl{Name: LOOP}, got %+v", module[3])
	}
	if got, ok := module[4].(vm.GotoOp); !ok || got.Jump != vm.IfGoto || got.Label != "LOOP" {
		t.Fatalf("expected 'if-goto LOOP' to parse correctly, got %+v", module[4])
	}
	if got, ok := module[5].(vm.FuncDecl); !ok || got.Name != "Main.main" || got.NLocal != 2 {
		t.Fatalf("expected 'function Main.main 2' to parse correctly, got %+v", module[5])
	}
	if got, ok := module[6].(vm.FuncCallOp); !ok || got.Name != "Math.multiply" || got.NArgs != 2 {
		t.Fatalf("expected 'call Math.multiply 2' to parse correctly, got %+v", module[6])
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	parser := vm.NewParser(strings.NewReader("this is not a valid vm instruction"))
	if _, err := parser.Parse(); err == nil {
		t.Fatalf("expected an error parsing malformed input")
	}
}
