// HIR traversal support. Visitors receive each node once; the Walk
// helpers recurse into children. A visitor that wants recursion calls the
// matching Walk function from inside its Visit method, mirroring how the
// node was reached.
//
// Nested closure bodies are deliberately not walked by WalkExpr: a
// visitor that needs them resolves the BodyID through a Map and descends
// explicitly at the definition point.

package hir

// Visitor is implemented by passes that traverse a function body.
type Visitor interface {
	VisitStmt(s Stmt)
	VisitExpr(e Expr)
	VisitBlock(b *Block)
	VisitPat(p Pat)
	VisitLocal(l *Local)
}

// WalkBody visits the body's argument patterns and its value expression.
func WalkBody(v Visitor, body *Body) {
	for _, arg := range body.Arguments {
		v.VisitPat(arg.Pat)
	}
	v.VisitExpr(body.Value)
}

// WalkStmt visits the children of a statement.
func WalkStmt(v Visitor, s Stmt) {
	switch s := s.(type) {
	case *LetStmt:
		v.VisitLocal(s.Local)
	case *ExprStmt:
		v.VisitExpr(s.Expr)
	}
}

// WalkLocal visits the children of a local declaration.
func WalkLocal(v Visitor, l *Local) {
	v.VisitPat(l.Pat)
	if l.Init != nil {
		v.VisitExpr(l.Init)
	}
}

// WalkBlock visits the children of a block.
func WalkBlock(v Visitor, b *Block) {
	for _, s := range b.Stmts {
		v.VisitStmt(s)
	}
	if b.Expr != nil {
		v.VisitExpr(b.Expr)
	}
}

// WalkPat visits the children of a pattern.
func WalkPat(v Visitor, p Pat) {
	if tp, ok := p.(*TuplePat); ok {
		for _, elem := range tp.Elems {
			v.VisitPat(elem)
		}
	}
}

// WalkExpr visits the children of an expression.
func WalkExpr(v Visitor, e Expr) {
	switch e := e.(type) {
	case *UnaryExpr:
		v.VisitExpr(e.Operand)
	case *BinaryExpr:
		v.VisitExpr(e.LHS)
		v.VisitExpr(e.RHS)
	case *AssignOpExpr:
		v.VisitExpr(e.LHS)
		v.VisitExpr(e.RHS)
	case *CallExpr:
		v.VisitExpr(e.Fn)
		for _, arg := range e.Args {
			v.VisitExpr(arg)
		}
	case *MethodCallExpr:
		v.VisitExpr(e.Receiver)
		for _, arg := range e.Args {
			v.VisitExpr(arg)
		}
	case *CastExpr:
		v.VisitExpr(e.Operand)
	case *StructExpr:
		for _, field := range e.Fields {
			v.VisitExpr(field.Expr)
		}
		if e.Base != nil {
			v.VisitExpr(e.Base)
		}
	case *BlockExpr:
		v.VisitBlock(e.Block)
	case *FieldExpr:
		v.VisitExpr(e.Base)
	case *IndexExpr:
		v.VisitExpr(e.Base)
		v.VisitExpr(e.Index)
	case *LiteralExpr, *PathExpr, *ClosureExpr:
		// Leaves at this level. Closure bodies are visited through a Map.
	}
}
