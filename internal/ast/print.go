package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer renders AST nodes back to canonical source text.
// The output re-parses to an equivalent tree; only whitespace differs
// from the original source.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the canonical text of node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

// String returns the canonical text of node.
func String(node Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb).Print(node)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.write("    ")
	}
}

func (p *Printer) printNode(node Node) {
	switch n := node.(type) {
	case nil:
		p.write("<nil>")
	case *Program:
		p.printProgram(n)
	case Stmt:
		p.printStmt(n)
	case Cond:
		p.printCond(n)
	case Expr:
		p.printExpr(n)
	default:
		p.printf("<%T>", node)
	}
}

// printProgram writes one top-level statement per line.
func (p *Printer) printProgram(prog *Program) {
	if prog == nil {
		return
	}
	for _, stmt := range prog.Stmts {
		p.writeIndent()
		p.printStmt(stmt)
		p.write("\n")
	}
}

func (p *Printer) printBlock(b *BlockStmt) {
	p.write("{\n")
	p.indent++
	for _, stmt := range b.Stmts {
		p.writeIndent()
		p.printStmt(stmt)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) printStmt(s Stmt) {
	switch n := s.(type) {
	case *BlockStmt:
		p.printBlock(n)

	case *LoopStmt:
		p.write("loop ")
		p.printBlock(n.Body)

	case *IfStmt:
		for i, br := range n.Branches {
			if i == 0 {
				p.write("if (")
			} else {
				p.write(" elif (")
			}
			p.printCond(br.Cond)
			p.write(") ")
			p.printBlock(br.Block)
		}
		if n.Else != nil {
			p.write(" else ")
			p.printBlock(n.Else)
		}

	case *WhileStmt:
		p.write("while (")
		p.printCond(n.Cond)
		p.write(") ")
		p.printBlock(n.Body)

	case *AssignStmt:
		p.printf("%s = ", n.Name)
		p.printExpr(n.Value)
		p.write(";")

	case *ActionStmt:
		p.write(n.Action.String())
		if n.Count != nil {
			p.write("(")
			p.printExpr(n.Count)
			p.write(")")
		}
		p.write(";")

	default:
		p.printf("<%T>", s)
	}
}

func (p *Printer) printCond(c Cond) {
	switch n := c.(type) {
	case *AndCond:
		p.write("and(")
		p.printCond(n.Left)
		p.write(", ")
		p.printCond(n.Right)
		p.write(")")

	case *OrCond:
		p.write("or(")
		p.printCond(n.Left)
		p.write(", ")
		p.printCond(n.Right)
		p.write(")")

	case *NotCond:
		p.write("not(")
		p.printCond(n.Cond)
		p.write(")")

	case *RelCond:
		p.write(n.Op.String())
		p.write("(")
		p.printExpr(n.Left)
		p.write(", ")
		p.printExpr(n.Right)
		p.write(")")

	default:
		p.printf("<%T>", c)
	}
}

func (p *Printer) printExpr(e Expr) {
	switch n := e.(type) {
	case *NumLit:
		p.write(strconv.Itoa(n.Value))

	case *VarRef:
		p.write(n.Name)

	case *SensorExpr:
		p.write(n.Sensor.String())
		if n.Index != nil {
			p.write("(")
			p.printExpr(n.Index)
			p.write(")")
		}

	case *MathExpr:
		p.write(n.Op.String())
		p.write("(")
		p.printExpr(n.Left)
		p.write(", ")
		p.printExpr(n.Right)
		p.write(")")

	default:
		p.printf("<%T>", e)
	}
}
