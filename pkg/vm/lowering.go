package vm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hmny-dev/n2t-core/pkg/asm"
)

// ----------------------------------------------------------------------------
// Segment resolution helpers

// pointerSegmentRegister names the Hack built-in register that holds the base address
// for each of the four pointer-dereferenced segments (their base varies at runtime,
// depending on the currently executing function's stack frame).
var pointerSegmentRegister = map[SegmentType]string{
	Local: "LCL", Argument: "ARG", This: "THIS", That: "THAT",
}

func isPointerSegment(seg SegmentType) bool {
	_, found := pointerSegmentRegister[seg]
	return found
}

func isDirectSegment(seg SegmentType) bool {
	return seg == Temp || seg == Pointer || seg == Static
}

// directAddress computes the compile-time-constant RAM address for the three segments
// whose base is fixed at lowering time: 'temp' (RAM[5..12]), 'pointer' (RAM[3..4], i.e.
// THIS/THAT themselves) and 'static' (RAM[staticBase..]). It also records, for 'static',
// the highest index referenced this file so the Lowerer can bump 'staticBase' afterwards.
func (lw *Lowerer) directAddress(seg SegmentType, i uint16) (uint16, error) {
	switch seg {
	case Temp:
		if i > 7 {
			return 0, fmt.Errorf("invalid 'temp' offset, got %d (valid range 0-7)", i)
		}
		return 5 + i, nil
	case Pointer:
		if i > 1 {
			return 0, fmt.Errorf("invalid 'pointer' offset, got %d (valid range 0-1)", i)
		}
		return 3 + i, nil
	case Static:
		if int(i) > lw.maxStaticIndex {
			lw.maxStaticIndex = int(i)
		}
		return lw.staticBase + i, nil
	default:
		return 0, fmt.Errorf("'%s' is not a direct-address segment", seg)
	}
}

// ----------------------------------------------------------------------------
// Vm Lowerer

// The Lowerer takes a 'vm.Program' (one or more modules, one per source file) and
// produces its 'asm.Program' counterpart: the full calling convention, boolean helpers,
// scoped labels, per-file static base bumping and the push-then-pop peephole fusion.
type Lowerer struct {
	scope      string // Symbol of the function currently being lowered, used to scope user labels
	staticBase uint16 // Running base address for the 'static' segment, starts at 16

	maxStaticIndex int    // Highest 'static' index seen in the file currently being lowered
	retCounter     uint64 // Monotonic counter for 'ret_k' labels, unique across the whole program
	boolCounter    uint64 // Monotonic counter for 'END_BOOL_k' labels, unique across the whole program
}

// Initializes and returns to the caller a brand new 'Lowerer' struct.
func NewLowerer() Lowerer {
	return Lowerer{staticBase: 16}
}

// Lower translates a full 'vm.Program' (potentially many files) into a single 'asm.Program'.
// Files are visited in lexicographic order of their key so that output is deterministic
// regardless of map iteration order. A bootstrap sequence (SP=256, call Sys.init 0) is
// prepended whenever more than one file participates in the compilation.
func (lw *Lowerer) Lower(program Program) (asm.Program, error) {
	return lw.LowerWithBootstrap(program, len(program) > 1)
}

// LowerWithBootstrap behaves like Lower but lets the caller force the bootstrap sequence
// on (or off) regardless of how many files participate, the explicit override a caller
// translating a single file still wants sometimes (e.g. a lone 'Sys.vm' meant to run standalone).
func (lw *Lowerer) LowerWithBootstrap(program Program, bootstrap bool) (asm.Program, error) {
	names := make([]string, 0, len(program))
	for name := range program {
		names = append(names, name)
	}
	sort.Strings(names)

	out := asm.Program{}
	if bootstrap {
		bootstrap, err := lw.lowerBootstrap()
		if err != nil {
			return nil, fmt.Errorf("failed to lower bootstrap sequence: %w", err)
		}
		out = append(out, bootstrap...)
	}

	for _, name := range names {
		lw.maxStaticIndex = -1 // Sentinel: no 'static' reference seen yet in this file

		fileAsm, err := lw.lowerModule(program[name])
		if err != nil {
			return nil, fmt.Errorf("failed to lower module '%s': %w", name, err)
		}
		out = append(out, fileAsm...)

		// Advance the static base by the highest referenced index (plus one); a file that
		// never touches 'static' leaves the base untouched for the next file.
		lw.staticBase += uint16(lw.maxStaticIndex + 1)
	}

	out = append(out, lw.lowerSharedHelpers()...)
	return out, nil
}

// lowerBootstrap emits 'SP := 256' followed by 'call Sys.init 0'.
func (lw *Lowerer) lowerBootstrap() (asm.Program, error) {
	setSP := asm.Program{
		asm.AInstruction{Location: "256"},
		asm.CInstruction{Dest: "D", Comp: "A"},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "M", Comp: "D"},
	}
	call, err := lw.lowerFuncCall(FuncCallOp{Name: "Sys.init", NArgs: 0})
	if err != nil {
		return nil, err
	}
	return append(setSP, call...), nil
}

// lowerModule lowers a single file's operations, applying the push-then-pop peephole
// fusion as a pre-processing pass before per-opcode lowering.
func (lw *Lowerer) lowerModule(module Module) (asm.Program, error) {
	out := asm.Program{}

	for i := 0; i < len(module); i++ {
		if push, pop, ok := asPushPopPair(module, i); ok {
			fused, err := lw.lowerPushPop(push, pop)
			if err != nil {
				return nil, err
			}
			out = append(out, fused...)
			i++ // Consume both the push and the pop
			continue
		}

		lowered, err := lw.lowerOperation(module[i])
		if err != nil {
			return nil, err
		}
		out = append(out, lowered...)
	}

	return out, nil
}

// asPushPopPair detects a 'Push(a,i)' immediately followed by 'Pop(b,j)' at index 'i'
// of 'module', the only pattern the peephole optimization is allowed to fuse.
func asPushPopPair(module Module, i int) (MemoryOp, MemoryOp, bool) {
	if i+1 >= len(module) {
		return MemoryOp{}, MemoryOp{}, false
	}
	push, pushOk := module[i].(MemoryOp)
	pop, popOk := module[i+1].(MemoryOp)
	if !pushOk || !popOk || push.Operation != Push || pop.Operation != Pop {
		return MemoryOp{}, MemoryOp{}, false
	}
	return push, pop, true
}

// lowerOperation dispatches a single 'vm.Operation' to its specialized lowering function.
func (lw *Lowerer) lowerOperation(op Operation) (asm.Program, error) {
	switch tOp := op.(type) {
	case MemoryOp:
		if tOp.Operation == Push {
			return lw.lowerPush(tOp.Segment, tOp.Offset)
		}
		return lw.lowerPop(tOp.Segment, tOp.Offset)
	case ArithmeticOp:
		return lw.lowerArithmeticOp(tOp)
	case LabelDecl:
		return lw.lowerLabelDecl(tOp), nil
	case GotoOp:
		return lw.lowerGotoOp(tOp), nil
	case FuncDecl:
		return lw.lowerFuncDecl(tOp), nil
	case FuncCallOp:
		return lw.lowerFuncCall(tOp)
	case ReturnOp:
		return lw.lowerReturnOp(), nil
	default:
		return nil, fmt.Errorf("unrecognized operation '%T'", op)
	}
}

// ----------------------------------------------------------------------------
// Memory operations

// loadValueIntoD resolves 'segment[offset]' and leaves its value in the D register.
func (lw *Lowerer) loadValueIntoD(seg SegmentType, i uint16) (asm.Program, error) {
	if seg == Constant {
		return asm.Program{
			asm.AInstruction{Location: fmt.Sprint(i)},
			asm.CInstruction{Dest: "D", Comp: "A"},
		}, nil
	}

	if isDirectSegment(seg) {
		addr, err := lw.directAddress(seg, i)
		if err != nil {
			return nil, err
		}
		return asm.Program{
			asm.AInstruction{Location: fmt.Sprint(addr)},
			asm.CInstruction{Dest: "D", Comp: "M"},
		}, nil
	}

	if isPointerSegment(seg) {
		reg := pointerSegmentRegister[seg]
		switch i {
		case 0: // Boundary case: no 'D+A' adjustment is emitted for index 0.
			return asm.Program{
				asm.AInstruction{Location: reg},
				asm.CInstruction{Dest: "A", Comp: "M"},
				asm.CInstruction{Dest: "D", Comp: "M"},
			}, nil
		case 1: // Skip the constant load, fold the '+1' directly into the comp code.
			return asm.Program{
				asm.AInstruction{Location: reg},
				asm.CInstruction{Dest: "D", Comp: "M"},
				asm.CInstruction{Dest: "A", Comp: "D+1"},
				asm.CInstruction{Dest: "D", Comp: "M"},
			}, nil
		default:
			return asm.Program{
				asm.AInstruction{Location: reg},
				asm.CInstruction{Dest: "D", Comp: "M"},
				asm.AInstruction{Location: fmt.Sprint(i)},
				asm.CInstruction{Dest: "A", Comp: "D+A"},
				asm.CInstruction{Dest: "D", Comp: "M"},
			}, nil
		}
	}

	return nil, fmt.Errorf("unrecognized segment '%s'", seg)
}

// loadAddressIntoD resolves 'segment[offset]' and leaves its RAM address (not its value)
// in the D register; used when the location is a pop/transfer destination.
func (lw *Lowerer) loadAddressIntoD(seg SegmentType, i uint16) (asm.Program, error) {
	if seg == Constant {
		return nil, fmt.Errorf("'constant' cannot be used as a pop destination")
	}

	if isDirectSegment(seg) {
		addr, err := lw.directAddress(seg, i)
		if err != nil {
			return nil, err
		}
		return asm.Program{
			asm.AInstruction{Location: fmt.Sprint(addr)},
			asm.CInstruction{Dest: "D", Comp: "A"},
		}, nil
	}

	if isPointerSegment(seg) {
		reg := pointerSegmentRegister[seg]
		switch i {
		case 0:
			return asm.Program{
				asm.AInstruction{Location: reg},
				asm.CInstruction{Dest: "D", Comp: "M"},
			}, nil
		case 1:
			return asm.Program{
				asm.AInstruction{Location: reg},
				asm.CInstruction{Dest: "D", Comp: "M"},
				asm.CInstruction{Dest: "D", Comp: "D+1"},
			}, nil
		default:
			return asm.Program{
				asm.AInstruction{Location: reg},
				asm.CInstruction{Dest: "D", Comp: "M"},
				asm.AInstruction{Location: fmt.Sprint(i)},
				asm.CInstruction{Dest: "D", Comp: "D+A"},
			}, nil
		}
	}

	return nil, fmt.Errorf("unrecognized segment '%s'", seg)
}

// lowerPush resolves the source value and pushes it onto the stack, growing SP upward.
func (lw *Lowerer) lowerPush(seg SegmentType, i uint16) (asm.Program, error) {
	value, err := lw.loadValueIntoD(seg, i)
	if err != nil {
		return nil, err
	}

	return append(value,
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Dest: "M", Comp: "D"},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "M", Comp: "M+1"},
	), nil
}

// lowerPop pops the stack's top and stores it at the resolved destination location.
func (lw *Lowerer) lowerPop(seg SegmentType, i uint16) (asm.Program, error) {
	if isDirectSegment(seg) {
		addr, err := lw.directAddress(seg, i)
		if err != nil {
			return nil, err
		}
		return asm.Program{
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "AM", Comp: "M-1"},
			asm.CInstruction{Dest: "D", Comp: "M"},
			asm.AInstruction{Location: fmt.Sprint(addr)},
			asm.CInstruction{Dest: "M", Comp: "D"},
		}, nil
	}

	if isPointerSegment(seg) {
		addr, err := lw.loadAddressIntoD(seg, i)
		if err != nil {
			return nil, err
		}
		out := append(addr,
			asm.AInstruction{Location: "R13"},
			asm.CInstruction{Dest: "M", Comp: "D"},
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "AM", Comp: "M-1"},
			asm.CInstruction{Dest: "D", Comp: "M"},
			asm.AInstruction{Location: "R13"},
			asm.CInstruction{Dest: "A", Comp: "M"},
			asm.CInstruction{Dest: "M", Comp: "D"},
		)
		return out, nil
	}

	return nil, fmt.Errorf("'%s' cannot be used as a pop destination", seg)
}

// lowerPushPop fuses a 'Push(a,i)' immediately followed by 'Pop(b,j)' into a direct
// RAM-to-RAM transfer via scratch registers, without ever touching the stack/SP.
func (lw *Lowerer) lowerPushPop(push, pop MemoryOp) (asm.Program, error) {
	srcValue, err := lw.loadValueIntoD(push.Segment, push.Offset)
	if err != nil {
		return nil, err
	}
	dstAddr, err := lw.loadAddressIntoD(pop.Segment, pop.Offset)
	if err != nil {
		return nil, err
	}

	out := append(asm.Program{}, srcValue...)
	out = append(out, asm.AInstruction{Location: "R13"}, asm.CInstruction{Dest: "M", Comp: "D"})
	out = append(out, dstAddr...)
	out = append(out, asm.AInstruction{Location: "R14"}, asm.CInstruction{Dest: "M", Comp: "D"})
	out = append(out,
		asm.AInstruction{Location: "R13"}, asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "R14"}, asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Dest: "M", Comp: "D"},
	)
	return out, nil
}

// ----------------------------------------------------------------------------
// Arithmetic operations

// binaryComp maps each binary (non-comparison) ArithOpType to the Hack comp code that,
// with the stack's second-from-top loaded as M and the popped top as D, computes the result.
var binaryComp = map[ArithOpType]string{
	Add: "D+M", Sub: "M-D", And: "D&M", Or: "D|M",
}

// unaryComp maps each unary ArithOpType to the Hack comp code that mutates the stack's
// top slot in place.
var unaryComp = map[ArithOpType]string{
	Neg: "-M", Not: "!M",
}

// comparisonHelper maps each comparison ArithOpType to the name of its shared Asm helper
// subroutine (see lowerSharedHelpers).
var comparisonHelper = map[ArithOpType]string{
	Eq: "boolean_cmd_helper_JEQ", Lt: "boolean_cmd_helper_JLT", Gt: "boolean_cmd_helper_JGT",
}

func (lw *Lowerer) lowerArithmeticOp(op ArithmeticOp) (asm.Program, error) {
	if comp, found := binaryComp[op.Operation]; found {
		return asm.Program{
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "AM", Comp: "M-1"},
			asm.CInstruction{Dest: "D", Comp: "M"},
			asm.CInstruction{Dest: "A", Comp: "A-1"},
			asm.CInstruction{Dest: "M", Comp: comp},
		}, nil
	}

	if comp, found := unaryComp[op.Operation]; found {
		return asm.Program{
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "A", Comp: "M-1"},
			asm.CInstruction{Dest: "M", Comp: comp},
		}, nil
	}

	if helper, found := comparisonHelper[op.Operation]; found {
		lw.boolCounter++
		continuation := fmt.Sprintf("END_BOOL_%d", lw.boolCounter)

		return asm.Program{
			asm.AInstruction{Location: continuation},
			asm.CInstruction{Dest: "D", Comp: "A"},
			asm.AInstruction{Location: "R15"},
			asm.CInstruction{Dest: "M", Comp: "D"},
			asm.AInstruction{Location: helper},
			asm.CInstruction{Comp: "0", Jump: "JMP"},
			asm.LabelDecl{Name: continuation},
		}, nil
	}

	return nil, fmt.Errorf("unrecognized arithmetic operation '%s'", op.Operation)
}

// ----------------------------------------------------------------------------
// Labels, branches, functions, calls and returns

// scopedLabel renders a user-declared label scoped to the function it was declared in,
// so identically named labels in two different functions never collide.
func (lw *Lowerer) scopedLabel(name string) string {
	return strings.ToLower(fmt.Sprintf("%s$%s", lw.scope, name))
}

func (lw *Lowerer) lowerLabelDecl(op LabelDecl) asm.Program {
	return asm.Program{asm.LabelDecl{Name: lw.scopedLabel(op.Name)}}
}

func (lw *Lowerer) lowerGotoOp(op GotoOp) asm.Program {
	target := lw.scopedLabel(op.Label)

	if op.Jump == Goto {
		return asm.Program{
			asm.AInstruction{Location: target},
			asm.CInstruction{Comp: "0", Jump: "JMP"},
		}
	}

	// 'if-goto' pops the stack's top and jumps only when the value is non-zero.
	return asm.Program{
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "AM", Comp: "M-1"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: target},
		asm.CInstruction{Comp: "D", Jump: "JNE"},
	}
}

func (lw *Lowerer) lowerFuncDecl(op FuncDecl) asm.Program {
	lw.scope = op.Name
	out := asm.Program{asm.LabelDecl{Name: op.Name}}

	// Allocate and zero-initialize 'NLocal' local variables by pushing constant zeroes.
	for n := uint8(0); n < op.NLocal; n++ {
		out = append(out,
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "A", Comp: "M"},
			asm.CInstruction{Dest: "M", Comp: "0"},
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "M", Comp: "M+1"},
		)
	}

	return out
}

func (lw *Lowerer) lowerFuncCall(op FuncCallOp) (asm.Program, error) {
	if op.Name == "" {
		return nil, fmt.Errorf("unable to lower a function call with an empty name")
	}

	lw.retCounter++
	retLabel := fmt.Sprintf("ret_%d", lw.retCounter)

	return asm.Program{
		asm.AInstruction{Location: fmt.Sprint(op.NArgs)},
		asm.CInstruction{Dest: "D", Comp: "A"},
		asm.AInstruction{Location: "R14"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		asm.AInstruction{Location: op.Name},
		asm.CInstruction{Dest: "D", Comp: "A"},
		asm.AInstruction{Location: "R15"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		asm.AInstruction{Location: retLabel},
		asm.CInstruction{Dest: "D", Comp: "A"},
		asm.AInstruction{Location: "call_helper"},
		asm.CInstruction{Comp: "0", Jump: "JMP"},

		asm.LabelDecl{Name: retLabel},
	}, nil
}

func (lw *Lowerer) lowerReturnOp() asm.Program {
	return asm.Program{
		asm.AInstruction{Location: "restore_stack_and_return"},
		asm.CInstruction{Comp: "0", Jump: "JMP"},
	}
}

// ----------------------------------------------------------------------------
// Shared helper subroutines

// pushRegister appends the Asm instructions that push the named register's value
// onto the stack, advancing SP by one.
func pushRegister(reg string) asm.Program {
	return asm.Program{
		asm.AInstruction{Location: reg},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Dest: "M", Comp: "D"},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "M", Comp: "M+1"},
	}
}

// restoreRegister appends the Asm instructions that recompute '*LCL-offset' and store it
// in the named register, without disturbing LCL itself (restored last by the caller).
func restoreRegister(offset int, reg string) asm.Program {
	return asm.Program{
		asm.AInstruction{Location: "LCL"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: fmt.Sprint(offset)},
		asm.CInstruction{Dest: "A", Comp: "D-A"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: reg},
		asm.CInstruction{Dest: "M", Comp: "D"},
	}
}

// lowerSharedHelpers emits, once, every subroutine the per-call-site code above jumps
// into: the call prologue, the return epilogue and the three boolean comparison helpers.
// It's wrapped in a trailing 'HALT_LOOP' so that falling off the end of the user program
// can never execute helper code as if it were the next instruction.
func (lw *Lowerer) lowerSharedHelpers() asm.Program {
	out := asm.Program{
		asm.LabelDecl{Name: "HALT_LOOP"},
		asm.AInstruction{Location: "HALT_LOOP"},
		asm.CInstruction{Comp: "0", Jump: "JMP"},
	}

	// call_helper: R14 = nArgs, R15 = target address, D = return address.
	out = append(out, asm.LabelDecl{Name: "call_helper"})
	out = append(out,
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Dest: "M", Comp: "D"},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "M", Comp: "M+1"},
	)
	out = append(out, pushRegister("LCL")...)
	out = append(out, pushRegister("ARG")...)
	out = append(out, pushRegister("THIS")...)
	out = append(out, pushRegister("THAT")...)
	out = append(out,
		// ARG := SP - 5 - nArgs
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "R14"},
		asm.CInstruction{Dest: "D", Comp: "D-M"},
		asm.AInstruction{Location: "5"},
		asm.CInstruction{Dest: "D", Comp: "D-A"},
		asm.AInstruction{Location: "ARG"},
		asm.CInstruction{Dest: "M", Comp: "D"},
		// LCL := SP
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "LCL"},
		asm.CInstruction{Dest: "M", Comp: "D"},
		// jump to the callee
		asm.AInstruction{Location: "R15"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Comp: "0", Jump: "JMP"},
	)

	// restore_stack_and_return: unwinds the current frame and resumes at the call site.
	out = append(out, asm.LabelDecl{Name: "restore_stack_and_return"})
	out = append(out,
		// R14 := *(LCL-5), the return address
		asm.AInstruction{Location: "LCL"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "5"},
		asm.CInstruction{Dest: "A", Comp: "D-A"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "R14"},
		asm.CInstruction{Dest: "M", Comp: "D"},
		// *ARG := pop()
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "AM", Comp: "M-1"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "ARG"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Dest: "M", Comp: "D"},
		// SP := *ARG + 1
		asm.AInstruction{Location: "ARG"},
		asm.CInstruction{Dest: "D", Comp: "M+1"},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "M", Comp: "D"},
	)
	out = append(out, restoreRegister(1, "THAT")...)
	out = append(out, restoreRegister(2, "THIS")...)
	out = append(out, restoreRegister(3, "ARG")...)
	out = append(out, restoreRegister(4, "LCL")...)
	out = append(out,
		asm.AInstruction{Location: "R14"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Comp: "0", Jump: "JMP"},
	)

	out = append(out, lowerComparisonHelper("boolean_cmd_helper_JEQ", "TRUE_EQ", "JEQ")...)
	out = append(out, lowerComparisonHelper("boolean_cmd_helper_JLT", "TRUE_LT", "JLT")...)
	out = append(out, lowerComparisonHelper("boolean_cmd_helper_JGT", "TRUE_GT", "JGT")...)

	return out
}

// lowerComparisonHelper emits one boolean comparison subroutine. It pops two values,
// subtracts them, writes -1 (true) or 0 (false) into the slot the first operand occupied,
// decrements SP, then resumes execution at the address stashed in R15 by the call site.
func lowerComparisonHelper(name, trueLabel, jump string) asm.Program {
	return asm.Program{
		asm.LabelDecl{Name: name},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "AM", Comp: "M-1"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.CInstruction{Dest: "A", Comp: "A-1"},
		asm.CInstruction{Dest: "D", Comp: "M-D"},
		asm.AInstruction{Location: trueLabel},
		asm.CInstruction{Comp: "D", Jump: jump},
		// False case: write 0 into the slot of the first operand.
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "A", Comp: "M-1"},
		asm.CInstruction{Dest: "M", Comp: "0"},
		asm.AInstruction{Location: "R15"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Comp: "0", Jump: "JMP"},
		// True case: write -1 into the slot of the first operand.
		asm.LabelDecl{Name: trueLabel},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "A", Comp: "M-1"},
		asm.CInstruction{Dest: "M", Comp: "-1"},
		asm.AInstruction{Location: "R15"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Comp: "0", Jump: "JMP"},
	}
}
