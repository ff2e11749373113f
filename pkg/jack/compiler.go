package jack

import (
	"fmt"
	"strconv"

	"github.com/hmny-dev/n2t-core/pkg/vm"
)

// CompilationEngine is a single-pass recursive-descent compiler: given a
// peekable token stream for exactly one class (§4.3), it consumes tokens and
// emits the VM instructions implementing that class directly, with no
// intermediate AST. The statement/expression shapes below mirror the
// Statement/Expression vocabulary of the teacher's original jack.go, folded
// into recursive functions rather than materialized as a standing tree.
type CompilationEngine struct {
	tok *Tokenizer

	className string
	class     *SymbolTable // kinds Static, Field; lives for the whole class
	routine   *SymbolTable // kinds Parameter, Local; reset per subroutine

	ifCounter    uint64 // 0-based, independent of whileCounter (§3)
	whileCounter uint64 // 0-based, independent of ifCounter (§3)
}

// NewCompilationEngine returns an engine ready to compile the class found on
// 'tok'.
func NewCompilationEngine(tok *Tokenizer) *CompilationEngine {
	return &CompilationEngine{tok: tok, class: NewSymbolTable(), routine: NewSymbolTable()}
}

// CompileClass consumes the whole token stream and returns the class's VM
// module: 'class' className '{' classVarDec* subroutineDec* '}'.
func (ce *CompilationEngine) CompileClass() (vm.Module, error) {
	if err := ce.expectKeyword("class"); err != nil {
		return nil, err
	}

	name, err := ce.expectIdentifier()
	if err != nil {
		return nil, fmt.Errorf("expected class name: %w", err)
	}
	ce.className = name

	if err := ce.expectSymbol("{"); err != nil {
		return nil, err
	}

	for {
		tok, ok := ce.peek()
		if !ok || tok.Kind != Keyword || (tok.Value != "static" && tok.Value != "field") {
			break
		}
		if err := ce.compileClassVarDec(); err != nil {
			return nil, fmt.Errorf("error compiling class variable declaration: %w", err)
		}
	}

	ops := []vm.Operation{}
	for {
		tok, ok := ce.peek()
		if !ok || tok.Kind != Keyword || !isSubroutineKeyword(tok.Value) {
			break
		}
		routineOps, err := ce.compileSubroutine()
		if err != nil {
			return nil, fmt.Errorf("error compiling subroutine in class '%s': %w", ce.className, err)
		}
		ops = append(ops, routineOps...)
	}

	if err := ce.expectSymbol("}"); err != nil {
		return nil, err
	}

	return vm.Module(ops), nil
}

func isSubroutineKeyword(v string) bool {
	return v == "constructor" || v == "function" || v == "method"
}

// compileClassVarDec: ('static'|'field') type varName (',' varName)* ';'
func (ce *CompilationEngine) compileClassVarDec() error {
	kindTok, _ := ce.next()
	kind := Static
	if kindTok.Value == "field" {
		kind = Field
	}

	dType, err := ce.compileType()
	if err != nil {
		return err
	}

	for {
		name, err := ce.expectIdentifier()
		if err != nil {
			return fmt.Errorf("expected variable name: %w", err)
		}
		ce.class.Define(name, kind, dType)

		tok, ok := ce.peek()
		if ok && tok.Kind == Symbol && tok.Value == "," {
			ce.next()
			continue
		}
		break
	}

	return ce.expectSymbol(";")
}

// compileType: 'int' | 'char' | 'boolean' | className
func (ce *CompilationEngine) compileType() (DataType, error) {
	tok, ok := ce.next()
	if !ok {
		return DataType{}, fmt.Errorf("expected a type, got end of input")
	}

	switch {
	case tok.Kind == Keyword && tok.Value == "int":
		return DataType{Main: Int}, nil
	case tok.Kind == Keyword && tok.Value == "char":
		return DataType{Main: Char}, nil
	case tok.Kind == Keyword && tok.Value == "boolean":
		return DataType{Main: Bool}, nil
	case tok.Kind == Identifier:
		return DataType{Main: Object, Subtype: tok.Value}, nil
	default:
		return DataType{}, fmt.Errorf("expected a type, got %s", tok)
	}
}

// compileSubroutine: ('constructor'|'function'|'method') ('void'|type) name
// '(' parameterList ')' '{' varDec* statements '}'
func (ce *CompilationEngine) compileSubroutine() ([]vm.Operation, error) {
	kindTok, _ := ce.next()
	var kind SubroutineKind
	switch kindTok.Value {
	case "constructor":
		kind = Constructor
	case "method":
		kind = Method
	default:
		kind = Function
	}

	if tok, ok := ce.peek(); ok && tok.Kind == Keyword && tok.Value == "void" {
		ce.next()
	} else if _, err := ce.compileType(); err != nil {
		return nil, fmt.Errorf("expected return type: %w", err)
	}

	name, err := ce.expectIdentifier()
	if err != nil {
		return nil, fmt.Errorf("expected subroutine name: %w", err)
	}

	ce.routine = NewSymbolTable()
	if kind == Method {
		ce.routine.Define("this", Parameter, DataType{Main: Object, Subtype: ce.className})
	}

	if err := ce.expectSymbol("("); err != nil {
		return nil, err
	}
	if err := ce.compileParameterList(); err != nil {
		return nil, fmt.Errorf("error compiling parameter list of '%s': %w", name, err)
	}
	if err := ce.expectSymbol(")"); err != nil {
		return nil, err
	}

	if err := ce.expectSymbol("{"); err != nil {
		return nil, err
	}
	for {
		tok, ok := ce.peek()
		if !ok || tok.Kind != Keyword || tok.Value != "var" {
			break
		}
		if err := ce.compileVarDec(); err != nil {
			return nil, fmt.Errorf("error compiling local variable declaration: %w", err)
		}
	}

	bodyOps, err := ce.compileStatements()
	if err != nil {
		return nil, fmt.Errorf("error compiling body of '%s': %w", name, err)
	}
	if err := ce.expectSymbol("}"); err != nil {
		return nil, err
	}

	fDecl := vm.FuncDecl{Name: fmt.Sprintf("%s.%s", ce.className, name), NLocal: uint8(ce.routine.Count(Local))}
	prelude := []vm.Operation{}

	switch kind {
	case Method:
		// §4.3.2: install the implicit 'this' argument as the object pointer.
		prelude = []vm.Operation{
			vm.MemoryOp{Operation: vm.Push, Segment: vm.Argument, Offset: 0},
			vm.MemoryOp{Operation: vm.Pop, Segment: vm.Pointer, Offset: 0},
		}
	case Constructor:
		// §4.3.2: allocate one word per field and install the new object's 'this'.
		prelude = []vm.Operation{
			vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: ce.class.Count(Field)},
			vm.FuncCallOp{Name: "Memory.alloc", NArgs: 1},
			vm.MemoryOp{Operation: vm.Pop, Segment: vm.Pointer, Offset: 0},
		}
	}

	return append(append([]vm.Operation{fDecl}, prelude...), bodyOps...), nil
}

// compileParameterList: ((type varName) (',' type varName)*)?
func (ce *CompilationEngine) compileParameterList() error {
	tok, ok := ce.peek()
	if ok && tok.Kind == Symbol && tok.Value == ")" {
		return nil // empty list
	}

	for {
		dType, err := ce.compileType()
		if err != nil {
			return err
		}
		name, err := ce.expectIdentifier()
		if err != nil {
			return fmt.Errorf("expected parameter name: %w", err)
		}
		ce.routine.Define(name, Parameter, dType)

		tok, ok := ce.peek()
		if ok && tok.Kind == Symbol && tok.Value == "," {
			ce.next()
			continue
		}
		break
	}

	return nil
}

// compileVarDec: 'var' type varName (',' varName)* ';'
func (ce *CompilationEngine) compileVarDec() error {
	ce.next() // 'var'

	dType, err := ce.compileType()
	if err != nil {
		return err
	}

	for {
		name, err := ce.expectIdentifier()
		if err != nil {
			return fmt.Errorf("expected variable name: %w", err)
		}
		ce.routine.Define(name, Local, dType)

		tok, ok := ce.peek()
		if ok && tok.Kind == Symbol && tok.Value == "," {
			ce.next()
			continue
		}
		break
	}

	return ce.expectSymbol(";")
}

// compileStatements compiles zero or more statements until a non-statement
// token (typically the closing '}') is reached.
func (ce *CompilationEngine) compileStatements() ([]vm.Operation, error) {
	ops := []vm.Operation{}

	for {
		tok, ok := ce.peek()
		if !ok || tok.Kind != Keyword {
			break
		}

		var stmtOps []vm.Operation
		var err error

		switch tok.Value {
		case "let":
			stmtOps, err = ce.compileLet()
		case "if":
			stmtOps, err = ce.compileIf()
		case "while":
			stmtOps, err = ce.compileWhile()
		case "do":
			stmtOps, err = ce.compileDo()
		case "return":
			stmtOps, err = ce.compileReturn()
		default:
			return ops, nil
		}

		if err != nil {
			return nil, err
		}
		ops = append(ops, stmtOps...)
	}

	return ops, nil
}

// compileLet: 'let' varName ('[' expression ']')? '=' expression ';' (§4.3.3)
func (ce *CompilationEngine) compileLet() ([]vm.Operation, error) {
	ce.next() // 'let'

	varName, err := ce.expectIdentifier()
	if err != nil {
		return nil, fmt.Errorf("expected variable name: %w", err)
	}
	variable, err := ce.resolve(varName)
	if err != nil {
		return nil, err
	}

	var indexOps []vm.Operation
	isArray := false
	if tok, ok := ce.peek(); ok && tok.Kind == Symbol && tok.Value == "[" {
		isArray = true
		ce.next()
		indexOps, err = ce.compileExpression()
		if err != nil {
			return nil, fmt.Errorf("error compiling array index expression: %w", err)
		}
		if err := ce.expectSymbol("]"); err != nil {
			return nil, err
		}
	}

	if err := ce.expectSymbol("="); err != nil {
		return nil, err
	}
	rhsOps, err := ce.compileExpression()
	if err != nil {
		return nil, fmt.Errorf("error compiling RHS expression: %w", err)
	}
	if err := ce.expectSymbol(";"); err != nil {
		return nil, err
	}

	if !isArray {
		return append(rhsOps, ce.popVariable(variable)), nil
	}

	ops := append([]vm.Operation{ce.pushVariable(variable)}, indexOps...)
	ops = append(ops, vm.ArithmeticOp{Operation: vm.Add})
	ops = append(ops, rhsOps...)
	// Canonical sequence so the RHS's own address computation (if it is
	// itself an array access) cannot clobber the target address (§4.3.3).
	ops = append(ops,
		vm.MemoryOp{Operation: vm.Pop, Segment: vm.Temp, Offset: 0},
		vm.MemoryOp{Operation: vm.Pop, Segment: vm.Pointer, Offset: 1},
		vm.MemoryOp{Operation: vm.Push, Segment: vm.Temp, Offset: 0},
		vm.MemoryOp{Operation: vm.Pop, Segment: vm.That, Offset: 0},
	)
	return ops, nil
}

// compileIf: 'if' '(' expression ')' '{' statements '}' ('else' '{' statements '}')?
func (ce *CompilationEngine) compileIf() ([]vm.Operation, error) {
	ce.next() // 'if'
	k := ce.nextIfLabel()
	falseLabel, endLabel := fmt.Sprintf("IF_FALSE_%d", k), fmt.Sprintf("IF_END_%d", k)

	if err := ce.expectSymbol("("); err != nil {
		return nil, err
	}
	condOps, err := ce.compileExpression()
	if err != nil {
		return nil, fmt.Errorf("error compiling if condition: %w", err)
	}
	if err := ce.expectSymbol(")"); err != nil {
		return nil, err
	}

	if err := ce.expectSymbol("{"); err != nil {
		return nil, err
	}
	thenOps, err := ce.compileStatements()
	if err != nil {
		return nil, fmt.Errorf("error compiling 'then' block: %w", err)
	}
	if err := ce.expectSymbol("}"); err != nil {
		return nil, err
	}

	var elseOps []vm.Operation
	hasElse := false
	if tok, ok := ce.peek(); ok && tok.Kind == Keyword && tok.Value == "else" {
		hasElse = true
		ce.next()
		if err := ce.expectSymbol("{"); err != nil {
			return nil, err
		}
		elseOps, err = ce.compileStatements()
		if err != nil {
			return nil, fmt.Errorf("error compiling 'else' block: %w", err)
		}
		if err := ce.expectSymbol("}"); err != nil {
			return nil, err
		}
	}

	ops := append(condOps, vm.ArithmeticOp{Operation: vm.Not})
	ops = append(ops, vm.GotoOp{Jump: vm.IfGoto, Label: falseLabel})
	ops = append(ops, thenOps...)
	ops = append(ops, vm.GotoOp{Jump: vm.Goto, Label: endLabel})
	ops = append(ops, vm.LabelDecl{Name: falseLabel})
	if hasElse {
		ops = append(ops, elseOps...)
	}
	ops = append(ops, vm.LabelDecl{Name: endLabel})
	return ops, nil
}

// compileWhile: 'while' '(' expression ')' '{' statements '}'
func (ce *CompilationEngine) compileWhile() ([]vm.Operation, error) {
	ce.next() // 'while'
	k := ce.nextWhileLabel()
	startLabel, endLabel := fmt.Sprintf("while_loop_%d", k), fmt.Sprintf("end_while_%d", k)

	if err := ce.expectSymbol("("); err != nil {
		return nil, err
	}
	condOps, err := ce.compileExpression()
	if err != nil {
		return nil, fmt.Errorf("error compiling while condition: %w", err)
	}
	if err := ce.expectSymbol(")"); err != nil {
		return nil, err
	}

	if err := ce.expectSymbol("{"); err != nil {
		return nil, err
	}
	bodyOps, err := ce.compileStatements()
	if err != nil {
		return nil, fmt.Errorf("error compiling while body: %w", err)
	}
	if err := ce.expectSymbol("}"); err != nil {
		return nil, err
	}

	ops := []vm.Operation{vm.LabelDecl{Name: startLabel}}
	ops = append(ops, condOps...)
	ops = append(ops, vm.ArithmeticOp{Operation: vm.Not})
	ops = append(ops, vm.GotoOp{Jump: vm.IfGoto, Label: endLabel})
	ops = append(ops, bodyOps...)
	ops = append(ops, vm.GotoOp{Jump: vm.Goto, Label: startLabel})
	ops = append(ops, vm.LabelDecl{Name: endLabel})
	return ops, nil
}

// compileDo: 'do' subroutineCall ';'
func (ce *CompilationEngine) compileDo() ([]vm.Operation, error) {
	ce.next() // 'do'

	callOps, err := ce.compileTerm()
	if err != nil {
		return nil, fmt.Errorf("error compiling 'do' call: %w", err)
	}
	if err := ce.expectSymbol(";"); err != nil {
		return nil, err
	}

	return append(callOps, vm.MemoryOp{Operation: vm.Pop, Segment: vm.Temp, Offset: 0}), nil
}

// compileReturn: 'return' expression? ';'
func (ce *CompilationEngine) compileReturn() ([]vm.Operation, error) {
	ce.next() // 'return'

	if tok, ok := ce.peek(); ok && tok.Kind == Symbol && tok.Value == ";" {
		ce.next()
		return []vm.Operation{
			vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: 0},
			vm.ReturnOp{},
		}, nil
	}

	exprOps, err := ce.compileExpression()
	if err != nil {
		return nil, fmt.Errorf("error compiling return expression: %w", err)
	}
	if err := ce.expectSymbol(";"); err != nil {
		return nil, err
	}
	return append(exprOps, vm.ReturnOp{}), nil
}

// compileExpression compiles a term followed by zero or more (op term) pairs,
// strictly left-to-right with no precedence climbing (§4.3.4, §9).
func (ce *CompilationEngine) compileExpression() ([]vm.Operation, error) {
	ops, err := ce.compileTerm()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := ce.peek()
		if !ok || tok.Kind != Symbol || !isBinaryOp(tok.Value) {
			break
		}
		ce.next()

		rhsOps, err := ce.compileTerm()
		if err != nil {
			return nil, fmt.Errorf("error compiling RHS of '%s': %w", tok.Value, err)
		}
		ops = append(ops, rhsOps...)

		opOps, err := binaryOpFor(tok.Value)
		if err != nil {
			return nil, err
		}
		ops = append(ops, opOps...)
	}

	return ops, nil
}

func isBinaryOp(sym string) bool {
	switch sym {
	case "+", "-", "*", "/", "&", "|", "<", ">", "=":
		return true
	}
	return false
}

func binaryOpFor(sym string) ([]vm.Operation, error) {
	switch sym {
	case "+":
		return []vm.Operation{vm.ArithmeticOp{Operation: vm.Add}}, nil
	case "-":
		return []vm.Operation{vm.ArithmeticOp{Operation: vm.Sub}}, nil
	case "&":
		return []vm.Operation{vm.ArithmeticOp{Operation: vm.And}}, nil
	case "|":
		return []vm.Operation{vm.ArithmeticOp{Operation: vm.Or}}, nil
	case "<":
		return []vm.Operation{vm.ArithmeticOp{Operation: vm.Lt}}, nil
	case ">":
		return []vm.Operation{vm.ArithmeticOp{Operation: vm.Gt}}, nil
	case "=":
		return []vm.Operation{vm.ArithmeticOp{Operation: vm.Eq}}, nil
	case "*":
		return []vm.Operation{vm.FuncCallOp{Name: "Math.multiply", NArgs: 2}}, nil
	case "/":
		return []vm.Operation{vm.FuncCallOp{Name: "Math.divide", NArgs: 2}}, nil
	default:
		return nil, fmt.Errorf("unrecognized binary operator '%s'", sym)
	}
}

// compileTerm compiles a single term (§4.3.4): literals, keyword constants,
// parenthesised expressions, unary operators and the three identifier shapes
// (plain variable, array access, subroutine call).
func (ce *CompilationEngine) compileTerm() ([]vm.Operation, error) {
	tok, ok := ce.next()
	if !ok {
		return nil, fmt.Errorf("expected a term, got end of input")
	}

	switch {
	case tok.Kind == IntConst:
		value, err := strconv.ParseUint(tok.Value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("error parsing integer literal '%s': %w", tok.Value, err)
		}
		return []vm.Operation{vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: uint16(value)}}, nil

	case tok.Kind == StringConst:
		ops := []vm.Operation{
			vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: uint16(len(tok.Value))},
			vm.FuncCallOp{Name: "String.new", NArgs: 1},
		}
		for _, char := range tok.Value {
			ops = append(ops,
				vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: uint16(char)},
				vm.FuncCallOp{Name: "String.appendChar", NArgs: 2},
			)
		}
		return ops, nil

	case tok.Kind == Keyword && tok.Value == "true":
		return []vm.Operation{
			vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: 1},
			vm.ArithmeticOp{Operation: vm.Neg},
		}, nil
	case tok.Kind == Keyword && (tok.Value == "false" || tok.Value == "null"):
		return []vm.Operation{vm.MemoryOp{Operation: vm.Push, Segment: vm.Constant, Offset: 0}}, nil
	case tok.Kind == Keyword && tok.Value == "this":
		return []vm.Operation{vm.MemoryOp{Operation: vm.Push, Segment: vm.Pointer, Offset: 0}}, nil

	case tok.Kind == Symbol && tok.Value == "(":
		ops, err := ce.compileExpression()
		if err != nil {
			return nil, err
		}
		if err := ce.expectSymbol(")"); err != nil {
			return nil, err
		}
		return ops, nil

	case tok.Kind == Symbol && tok.Value == "-":
		ops, err := ce.compileTerm()
		if err != nil {
			return nil, fmt.Errorf("error compiling operand of unary '-': %w", err)
		}
		return append(ops, vm.ArithmeticOp{Operation: vm.Neg}), nil
	case tok.Kind == Symbol && tok.Value == "~":
		ops, err := ce.compileTerm()
		if err != nil {
			return nil, fmt.Errorf("error compiling operand of unary '~': %w", err)
		}
		return append(ops, vm.ArithmeticOp{Operation: vm.Not}), nil

	case tok.Kind == Identifier:
		return ce.compileIdentifierTerm(tok.Value)

	default:
		return nil, fmt.Errorf("unexpected token %s in expression", tok)
	}
}

// compileIdentifierTerm resolves the three identifier-led term shapes:
// plain variable read, array access ('id[e]') and subroutine call
// ('id(...)', 'id.f(...)').
func (ce *CompilationEngine) compileIdentifierTerm(name string) ([]vm.Operation, error) {
	next, ok := ce.peek()

	switch {
	case ok && next.Kind == Symbol && next.Value == "[":
		ce.next()
		variable, err := ce.resolve(name)
		if err != nil {
			return nil, err
		}
		idxOps, err := ce.compileExpression()
		if err != nil {
			return nil, fmt.Errorf("error compiling array index expression: %w", err)
		}
		if err := ce.expectSymbol("]"); err != nil {
			return nil, err
		}

		ops := append([]vm.Operation{ce.pushVariable(variable)}, idxOps...)
		ops = append(ops, vm.ArithmeticOp{Operation: vm.Add})
		ops = append(ops,
			vm.MemoryOp{Operation: vm.Pop, Segment: vm.Pointer, Offset: 1},
			vm.MemoryOp{Operation: vm.Push, Segment: vm.That, Offset: 0},
		)
		return ops, nil

	case ok && next.Kind == Symbol && next.Value == "(":
		// Bare 'f(args)' is a method call on the enclosing class instance.
		ce.next()
		argOps, nArgs, err := ce.compileExpressionList()
		if err != nil {
			return nil, err
		}
		if err := ce.expectSymbol(")"); err != nil {
			return nil, err
		}
		ops := append([]vm.Operation{vm.MemoryOp{Operation: vm.Push, Segment: vm.Pointer, Offset: 0}}, argOps...)
		ops = append(ops, vm.FuncCallOp{Name: fmt.Sprintf("%s.%s", ce.className, name), NArgs: nArgs + 1})
		return ops, nil

	case ok && next.Kind == Symbol && next.Value == ".":
		ce.next()
		subName, err := ce.expectIdentifier()
		if err != nil {
			return nil, fmt.Errorf("expected subroutine name after '.': %w", err)
		}
		if err := ce.expectSymbol("("); err != nil {
			return nil, err
		}
		argOps, nArgs, err := ce.compileExpressionList()
		if err != nil {
			return nil, err
		}
		if err := ce.expectSymbol(")"); err != nil {
			return nil, err
		}

		// If 'name' names a known variable, this is a method call on that
		// object: push it and resolve the callee through its declared type.
		// Otherwise 'name' is taken to be a class name (§4.3.4).
		if variable, found := ce.resolveOptional(name); found {
			ops := append([]vm.Operation{ce.pushVariable(variable)}, argOps...)
			ops = append(ops, vm.FuncCallOp{Name: fmt.Sprintf("%s.%s", variable.Type.Subtype, subName), NArgs: nArgs + 1})
			return ops, nil
		}

		ops := append([]vm.Operation{}, argOps...)
		ops = append(ops, vm.FuncCallOp{Name: fmt.Sprintf("%s.%s", name, subName), NArgs: nArgs})
		return ops, nil

	default:
		variable, err := ce.resolve(name)
		if err != nil {
			return nil, err
		}
		return []vm.Operation{ce.pushVariable(variable)}, nil
	}
}

// compileExpressionList: (expression (',' expression)*)?
func (ce *CompilationEngine) compileExpressionList() ([]vm.Operation, uint8, error) {
	ops := []vm.Operation{}
	var n uint8

	if tok, ok := ce.peek(); ok && tok.Kind == Symbol && tok.Value == ")" {
		return ops, 0, nil
	}

	for {
		exprOps, err := ce.compileExpression()
		if err != nil {
			return nil, 0, fmt.Errorf("error compiling argument %d: %w", n, err)
		}
		ops = append(ops, exprOps...)
		n++

		tok, ok := ce.peek()
		if ok && tok.Kind == Symbol && tok.Value == "," {
			ce.next()
			continue
		}
		break
	}

	return ops, n, nil
}

// ----------------------------------------------------------------------------
// Small helpers

func (ce *CompilationEngine) pushVariable(v Variable) vm.Operation {
	return vm.MemoryOp{Operation: vm.Push, Segment: segmentFor(v.Kind), Offset: v.Index}
}

func (ce *CompilationEngine) popVariable(v Variable) vm.Operation {
	return vm.MemoryOp{Operation: vm.Pop, Segment: segmentFor(v.Kind), Offset: v.Index}
}

func segmentFor(kind VarKind) vm.SegmentType {
	switch kind {
	case Local:
		return vm.Local
	case Parameter:
		return vm.Argument
	case Field:
		return vm.This
	case Static:
		return vm.Static
	default:
		return ""
	}
}

func (ce *CompilationEngine) resolve(name string) (Variable, error) {
	return scopeChain{subroutine: ce.routine, class: ce.class}.resolve(name)
}

func (ce *CompilationEngine) resolveOptional(name string) (Variable, bool) {
	if v, ok := ce.routine.Resolve(name); ok {
		return v, true
	}
	if v, ok := ce.class.Resolve(name); ok {
		return v, true
	}
	return Variable{}, false
}

func (ce *CompilationEngine) nextIfLabel() uint64 {
	k := ce.ifCounter
	ce.ifCounter++
	return k
}

func (ce *CompilationEngine) nextWhileLabel() uint64 {
	k := ce.whileCounter
	ce.whileCounter++
	return k
}

func (ce *CompilationEngine) next() (Token, bool) { return ce.tok.Next() }
func (ce *CompilationEngine) peek() (Token, bool) { return ce.tok.Peek() }

func (ce *CompilationEngine) expectSymbol(sym string) error {
	tok, ok := ce.next()
	if !ok {
		return fmt.Errorf("expected symbol '%s', got end of input", sym)
	}
	if tok.Kind != Symbol || tok.Value != sym {
		return fmt.Errorf("expected symbol '%s', got %s", sym, tok)
	}
	return nil
}

func (ce *CompilationEngine) expectKeyword(kw string) error {
	tok, ok := ce.next()
	if !ok {
		return fmt.Errorf("expected keyword '%s', got end of input", kw)
	}
	if tok.Kind != Keyword || tok.Value != kw {
		return fmt.Errorf("expected keyword '%s', got %s", kw, tok)
	}
	return nil
}

func (ce *CompilationEngine) expectIdentifier() (string, error) {
	tok, ok := ce.next()
	if !ok {
		return "", fmt.Errorf("expected an identifier, got end of input")
	}
	if tok.Kind != Identifier {
		return "", fmt.Errorf("expected an identifier, got %s", tok)
	}
	return tok.Value, nil
}
