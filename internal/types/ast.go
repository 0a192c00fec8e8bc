package types

import "fmt"

// Kind discriminates AST node types without a full type switch. A node's
// Kind is set only when it is built with At; a node built as a plain
// struct literal reports KindInt, the zero value. The evaluator and the
// dependency extraction walk in pkg/reactor switch on concrete node types
// and do not read Kind.
type Kind byte

const (
	KindInt Kind = iota
	KindFloat
	KindText
	KindMoney
	KindDate
	KindTime
	KindDateTime
	KindPercentage
	KindRatio
	KindBool
	KindUnknown
	KindNil
	KindIdent
	KindBinary
	KindUnary
	KindMember
	KindIndex
	KindCall
	KindBlock
	KindExprStmt
	KindVarDecl
	KindIf
	KindWhile
	KindFor
	KindForIn
	KindReturn
	KindFuncDef
	KindParam
	KindListLit
	KindRecordLit
	KindAssign
)

// SourcePos is a 1-based line/column position, zeroed for synthetic nodes.
type SourcePos struct {
	File   string
	Line   int
	Column int
}

func (p SourcePos) String() string {
	if p.Line == 0 && p.Column == 0 {
		return "<synthetic>"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}

	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is any node in the AST.
type Node interface {
	Kind() Kind
	Position() SourcePos
	String() string
}

// Expr is any AST node that produces a value when evaluated. Statements
// (VarDecl, ExprStmt, If used as a statement, loops, Return) are also
// Exprs: the language is expression-oriented, mirroring the teacher's
// uniform Expr interface.
type Expr interface {
	Node
	exprNode()
}

type base struct {
	pos SourcePos
	k   Kind
}

func (b base) Position() SourcePos { return b.pos }
func (b base) Kind() Kind          { return b.k }
func (base) exprNode()             {}

// At builds the embeddable base for a node at the given position and kind.
func At(pos SourcePos, k Kind) base { return base{pos: pos, k: k} }

// ---------------------------------------------------------------------
// Literals
// ---------------------------------------------------------------------

type IntLit struct {
	base
	Value int64
}

func (e *IntLit) String() string { return fmt.Sprintf("%d", e.Value) }

type FloatLit struct {
	base
	Value float64
}

func (e *FloatLit) String() string { return fmt.Sprintf("%g", e.Value) }

type TextLit struct {
	base
	Value string
}

func (e *TextLit) String() string { return fmt.Sprintf("%q", e.Value) }

// MoneyLit is the canonical `@"$[-]D.CC"` literal from spec.md §6.
// Currency is resolved at evaluation time to the runtime's default
// currency unless Currency is explicitly set by the host AST builder.
type MoneyLit struct {
	base
	// AmountSubunits is already scaled to the fixed 10,000-subunit scale
	// (spec.md §3); the literal scanner in internal/litparse performs the
	// truncation-toward-zero rule before constructing this node.
	AmountSubunits int64
	Currency       string // "" means "use the runtime's default currency"
}

func (e *MoneyLit) String() string {
	return fmt.Sprintf("money(%d/10000 %s)", e.AmountSubunits, e.Currency)
}

type DateLit struct {
	base
	Year, Month, Day int
}

func (e *DateLit) String() string { return fmt.Sprintf("%04d-%02d-%02d", e.Year, e.Month, e.Day) }

type TimeLit struct {
	base
	Hour, Minute, Second, Millisecond int
}

func (e *TimeLit) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", e.Hour, e.Minute, e.Second, e.Millisecond)
}

type DateTimeLit struct {
	base
	Year, Month, Day                  int
	Hour, Minute, Second, Millisecond int
}

func (e *DateTimeLit) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%03d",
		e.Year, e.Month, e.Day, e.Hour, e.Minute, e.Second, e.Millisecond)
}

type PercentageLit struct {
	base
	Value float64 // already in percent units, e.g. 12.5 means 12.5%
}

func (e *PercentageLit) String() string { return fmt.Sprintf("%g%%", e.Value) }

type RatioLit struct {
	base
	Numerator, Denominator float64
}

func (e *RatioLit) String() string { return fmt.Sprintf("%g/%g", e.Numerator, e.Denominator) }

type BoolLit struct {
	base
	Value bool
}

func (e *BoolLit) String() string { return fmt.Sprintf("%t", e.Value) }

// UnknownLit is the "no value observed" literal from spec.md §3.
type UnknownLit struct{ base }

func (e *UnknownLit) String() string { return "unknown" }

// NilLit is the "explicit absence" literal from spec.md §3.
type NilLit struct{ base }

func (e *NilLit) String() string { return "nil" }

// ---------------------------------------------------------------------
// Identifiers, operators
// ---------------------------------------------------------------------

type Ident struct {
	base
	Name string
}

func (e *Ident) String() string { return e.Name }

type BinOp byte

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNEq
	OpLT
	OpGT
	OpLTE
	OpGTE
	OpAnd
	OpOr
)

func (op BinOp) String() string {
	names := [...]string{"+", "-", "*", "/", "==", "!=", "<", ">", "<=", ">=", "&&", "||"}
	if int(op) < len(names) {
		return names[op]
	}

	return fmt.Sprintf("BinOp(%d)", op)
}

type BinaryExpr struct {
	base
	Left  Expr
	Op    BinOp
	Right Expr
}

func (e *BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right) }

type UnOp byte

const (
	OpNot UnOp = iota
	OpNeg
)

func (op UnOp) String() string {
	if op == OpNot {
		return "!"
	}

	return "-"
}

type UnaryExpr struct {
	base
	Op      UnOp
	Operand Expr
}

func (e *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", e.Op, e.Operand) }

// ---------------------------------------------------------------------
// Compound literals
// ---------------------------------------------------------------------

type ListLit struct {
	base
	Elements []Expr
}

func (e *ListLit) String() string { return fmt.Sprintf("list[%d]", len(e.Elements)) }

// RecordField is a single `name: value` entry. Order is preserved on the
// AST node even though spec.md §3 says insertion order is not observable
// on the runtime Value — the AST needs it to evaluate fields left to right.
type RecordField struct {
	Name  string
	Value Expr
}

type RecordLit struct {
	base
	Fields []RecordField
	Parent Expr // nil if no explicit parent
}

func (e *RecordLit) String() string { return fmt.Sprintf("record{%d fields}", len(e.Fields)) }

// ---------------------------------------------------------------------
// Member / index / call
// ---------------------------------------------------------------------

type MemberExpr struct {
	base
	Object Expr
	Name   string
}

func (e *MemberExpr) String() string { return fmt.Sprintf("%s.%s", e.Object, e.Name) }

type IndexExpr struct {
	base
	Object Expr
	Index  Expr
}

func (e *IndexExpr) String() string { return fmt.Sprintf("%s[%s]", e.Object, e.Index) }

type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) String() string { return fmt.Sprintf("%s(...%d args)", e.Callee, len(e.Args)) }

// AssignTarget is the left-hand side of an assignment: an identifier, a
// member access, or an index expression (spec.md §4.5).
type AssignTarget interface {
	Expr
	assignTargetNode()
}

func (e *Ident) assignTargetNode()      {}
func (e *MemberExpr) assignTargetNode() {}
func (e *IndexExpr) assignTargetNode()  {}

type AssignExpr struct {
	base
	Target AssignTarget
	Value  Expr
}

func (e *AssignExpr) String() string { return fmt.Sprintf("%s = %s", e.Target, e.Value) }

// ---------------------------------------------------------------------
// Control flow
// ---------------------------------------------------------------------

type BlockExpr struct {
	base
	Statements []Expr
}

func (e *BlockExpr) String() string { return fmt.Sprintf("{...%d stmts}", len(e.Statements)) }

type ExprStmt struct {
	base
	Expr Expr
}

func (e *ExprStmt) String() string { return e.Expr.String() + ";" }

type VarDecl struct {
	base
	Name string
	Init Expr // nil if no initializer (binds to Nil)
}

func (e *VarDecl) String() string {
	if e.Init == nil {
		return fmt.Sprintf("var %s;", e.Name)
	}

	return fmt.Sprintf("var %s = %s;", e.Name, e.Init)
}

type IfExpr struct {
	base
	Cond Expr
	Then Expr
	Else Expr // nil if no else branch
}

func (e *IfExpr) String() string { return fmt.Sprintf("if (%s) %s", e.Cond, e.Then) }

type WhileExpr struct {
	base
	Cond Expr
	Body Expr
}

func (e *WhileExpr) String() string { return fmt.Sprintf("while (%s) %s", e.Cond, e.Body) }

type ForExpr struct {
	base
	Init   Expr // nil
	Cond   Expr // nil
	Update Expr // nil
	Body   Expr
}

func (e *ForExpr) String() string { return "for (...)" }

type ForInExpr struct {
	base
	VarName string
	Iter    Expr
	Body    Expr
}

func (e *ForInExpr) String() string { return fmt.Sprintf("for (%s in %s)", e.VarName, e.Iter) }

type ReturnExpr struct {
	base
	Value Expr // nil if bare `return;`
}

func (e *ReturnExpr) String() string { return "return;" }

// ---------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------

type Param struct {
	base
	Name string
}

func (e *Param) String() string { return e.Name }

type FuncDef struct {
	base
	Name   string // "" for anonymous function expressions
	Params []Param
	Body   Expr
}

func (e *FuncDef) String() string { return fmt.Sprintf("function %s(...%d)", e.Name, len(e.Params)) }
