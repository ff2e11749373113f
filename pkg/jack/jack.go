// Package jack implements the tokenizer, dual symbol tables and single-pass
// recursive-descent code generator for the nand2tetris HLL (a small,
// class-based language that compiles straight to VM instructions).
package jack

// ----------------------------------------------------------------------------
// General information

// This section contains some general information about the HLL.
//
// A program is a set of classes, each compiled independently to its own VM
// module. Other than classes the other constructs are variables (fields,
// statics, locals, parameters), subroutines (functions, methods,
// constructors), statements (do/let/if/while/return) and expressions.
// The CompilationEngine consumes a Tokenizer directly and folds these
// constructs into []vm.Operation without ever materializing a standing AST.

// TokenKind enumerates the five shapes a HLL token can take.
type TokenKind string

const (
	Keyword     TokenKind = "keyword"
	Symbol      TokenKind = "symbol"
	Identifier  TokenKind = "identifier"
	IntConst    TokenKind = "int_const"
	StringConst TokenKind = "string_const"
)

// Token is the unit the CompilationEngine consumes; Value holds the literal
// text (without surrounding quotes for StringConst).
type Token struct {
	Kind  TokenKind
	Value string
}

// Keywords is the fixed set of 21 reserved words of the HLL.
var Keywords = map[string]bool{
	"class": true, "constructor": true, "function": true, "method": true,
	"field": true, "static": true, "var": true,
	"int": true, "char": true, "boolean": true, "void": true,
	"true": true, "false": true, "null": true, "this": true,
	"let": true, "do": true, "if": true, "else": true, "while": true, "return": true,
}

// Symbols is the fixed set of 19 single-character symbols of the HLL.
var Symbols = map[byte]bool{
	'{': true, '}': true, '(': true, ')': true, '[': true, ']': true,
	'.': true, ',': true, ';': true, '+': true, '-': true, '*': true,
	'/': true, '&': true, '|': true, '<': true, '>': true, '=': true, '~': true,
}

// ----------------------------------------------------------------------------
// Variables

// VarKind names the symbol table a Variable is registered in, which also
// names the VM segment used to reach it (per §3's symbol table entry shape).
type VarKind string

const (
	Local     VarKind = "local"
	Field     VarKind = "field" // reached through the 'this' VM segment
	Static    VarKind = "static"
	Parameter VarKind = "argument"
)

// DataType describes the declared type of a Variable or expression. Subtype
// carries the class name when Main == Object (e.g. "Array", "SquareGame").
type DataType struct {
	Main    DataTypeKind
	Subtype string
}

type DataTypeKind string

const (
	Int    DataTypeKind = "int"
	Char   DataTypeKind = "char"
	Bool   DataTypeKind = "boolean"
	Void   DataTypeKind = "void"
	Object DataTypeKind = "object"
)

// Variable is one entry of a SymbolTable: a (type, kind, index) triple.
type Variable struct {
	Name  string
	Kind  VarKind
	Type  DataType
	Index uint16
}

// ----------------------------------------------------------------------------
// Subroutines

// SubroutineKind selects the prologue the CompilationEngine emits (§4.3.2).
type SubroutineKind string

const (
	Function    SubroutineKind = "function"
	Method      SubroutineKind = "method"
	Constructor SubroutineKind = "constructor"
)
