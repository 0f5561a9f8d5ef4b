package ast

// Walk traverses an AST in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: collect all assigned variable names
//
//	names := map[string]bool{}
//	ast.Walk(program, func(n ast.Node) bool {
//	    if a, ok := n.(*ast.AssignStmt); ok {
//	        names[a.Name] = true
//	    }
//	    return true
//	})
func Walk(node Node, fn func(Node) bool) {
	if isNil(node) || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}

	// Statements
	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}
	case *LoopStmt:
		Walk(n.Body, fn)
	case *IfStmt:
		for _, br := range n.Branches {
			Walk(br.Cond, fn)
			Walk(br.Block, fn)
		}
		Walk(n.Else, fn)
	case *WhileStmt:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)
	case *AssignStmt:
		Walk(n.Value, fn)
	case *ActionStmt:
		Walk(n.Count, fn)

	// Conditions
	case *AndCond:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *OrCond:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *NotCond:
		Walk(n.Cond, fn)
	case *RelCond:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	// Expressions
	case *NumLit, *VarRef:
		// no children
	case *SensorExpr:
		Walk(n.Index, fn)
	case *MathExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	}
}

// isNil reports whether node is nil, including a nil *BlockStmt such as
// an IfStmt without else.
func isNil(node Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *BlockStmt:
		return n == nil
	}
	return false
}
