// Package vm implements the data model, the goparsec-based text parser and the
// textual code generator for the nand2tetris stack-based intermediate language (VM).
package vm

// ----------------------------------------------------------------------------
// General information

// This section contains some general information about the VM intermediate language.
//
// We declare a shared 'Operation' interface for every macro operation available for the
// language and we define some other useful top-level struct such as Program and Module.
// Is important to note that a VM program can be composed of multiple translation units
// that can be also referenced as file or modules or also classes.

// A VM Program is just a set of multiple modules/files, in the VM spec each Jack class is
// translated to its own .vm file (just like Java .class file) that can be handled as its
// own translation unit during the compilation or lowering phases. Keyed by the module's
// file stem (without the '.vm' extension), since 'static' segment isolation and bootstrap
// ordering are both organized per-file.
type Program map[string]Module

// A VM Module is just a linear list of VM operations/instructions
type Module []Operation

// Used to put together all operation in the VM language (Memory, Arithmetic, ... ops).
type Operation interface{}

// ----------------------------------------------------------------------------
// Memory Op

// In memory representation of a Memory operation for the VM language.
//
// In the VM intermediate language there are only two possible memory operation on the stack.
// We could either push a new value taken from the specified segment location on the stack's
// top or take the stack's top and saves its value at the specified segment location.
type MemoryOp struct {
	Operation OperationType // The type of operation, either 'push' or 'pop'
	Segment   SegmentType   // The named memory segment to use (this, that, temp, ...)
	Offset    uint16        // The specific location/offset inside of the memory segment
}

type OperationType string // Enum to manage the operation allowed for a MemoryOp

const (
	Push OperationType = "push"
	Pop  OperationType = "pop"
)

type SegmentType string // Enum to manage the segment accessible for a MemoryOp

const (
	Temp     SegmentType = "temp"     // Real segment used to store intermediate computations
	Constant SegmentType = "constant" // Virtual segment used to access numeric constant

	Local    SegmentType = "local"    // Real segment used to store local function variables
	Static   SegmentType = "static"   // Real segment used to store shared/static variables
	Argument SegmentType = "argument" // Real segment used to store function's argument

	This    SegmentType = "this"    // Virtual segment used to point to a specific memory location
	That    SegmentType = "that"    // Virtual segment used to point to a specific memory location
	Pointer SegmentType = "pointer" // Real segment w/ 2 location used to set the 'this' and 'that' pointers
)

// ----------------------------------------------------------------------------
// Arithmetic Op

// In memory representation of a Arithmetic operation for the VM language.
//
// In the VM intermediate language there are just a handful of operation available.
// In particular each operation acts directly on the top of the stack, of course we have both unary
// and binary operation, the specific management of each op will be handled in the codegen phase.
type ArithmeticOp struct{ Operation ArithOpType }

type ArithOpType string // Enum to manage the operation allowed for an ArithmeticOp

const (
	Eq ArithOpType = "eq" // Comparison operations
	Gt ArithOpType = "gt"
	Lt ArithOpType = "lt"

	Add ArithOpType = "add" // Arithmetic operations
	Sub ArithOpType = "sub"
	Neg ArithOpType = "neg"

	Not ArithOpType = "not" // Bitwise operations
	And ArithOpType = "and"
	Or  ArithOpType = "or"
)

// BinaryOps reports whether an ArithOpType pops 1 or 2 operands off the stack.
var BinaryOps = map[ArithOpType]bool{
	Eq: true, Gt: true, Lt: true, Add: true, Sub: true, And: true, Or: true,
	Neg: false, Not: false,
}

// ----------------------------------------------------------------------------
// Label Declaration and Branching

// In memory representation of a 'label' declaration statement in the VM language.
//
// A label is only ever visible within the function it was declared in: two different
// functions are free to reuse the same label name without clashing (see Lowerer.scopedLabel
// for how the name is scoped when emitting the equivalent Asm label).
type LabelDecl struct {
	Name string
}

// In memory representation of a 'goto'/'if-goto' statement in the VM language.
//
// 'goto' jumps unconditionally, 'if-goto' pops the stack's top and jumps only if the
// popped value is non-zero (any value but VM false, which is represented as 0x0000).
type GotoOp struct {
	Jump  JumpType
	Label string
}

type JumpType string // Enum to manage the jump condition allowed for a GotoOp

const (
	Goto   JumpType = "goto"
	IfGoto JumpType = "if-goto"
)

// ----------------------------------------------------------------------------
// Function declaration, call and return

// In memory representation of a 'function' declaration statement in the VM language.
//
// 'NLocal' tells the Lowerer how many local variables the callee needs: these must be
// allocated on the stack and zero-initialized as part of the function's prologue.
type FuncDecl struct {
	Name   string
	NLocal uint8
}

// In memory representation of a 'call' statement in the VM language.
//
// 'NArgs' tells the Lowerer how many of the topmost stack values are the arguments being
// passed to the callee, this is needed to correctly compute the callee's ARG base.
type FuncCallOp struct {
	Name  string
	NArgs uint8
}

// In memory representation of a 'return' statement in the VM language.
//
// Restores the caller's segment pointers (THAT, THIS, ARG, LCL) and resumes execution
// right after the 'call' site, propagating the callee's return value on the caller's stack.
type ReturnOp struct{}
