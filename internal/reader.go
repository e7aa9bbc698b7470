package internal

import (
	"fmt"
	"strings"
)

//R generic type
type R interface{}

//PrintTree renders every top level statement as an s-expression, one per line
func (state *interpreterState) PrintTree() string {
	var out strings.Builder
	for _, stmt := range state.stmts {
		out.WriteString(stmt.accept(stringVisitor{}).(string))
		out.WriteByte('\n')
	}
	return out.String()
}

type stringVisitor struct{}

func (v stringVisitor) visitExprStmt(stmt *exprStmt) R {
	return stmt.expression.accept(v)
}

func (v stringVisitor) visitFnStmt(stmt *fnStmt) R {
	out := "(def " + stmt.name.lexeme + " ("
	for i, param := range stmt.params {
		out += param.lexeme
		if i < len(stmt.params)-1 {
			out += " "
		}
	}
	out += ")"
	return out + v.body(stmt.body) + ")"
}

func (v stringVisitor) body(block *blockStmt) string {
	out := ""
	for _, st := range block.stmts {
		out += fmt.Sprintf(" %v", st.accept(v))
	}
	return out
}

func (v stringVisitor) visitIfStmt(stmt *ifStmt) R {
	out := "(if"
	for _, branch := range stmt.branches {
		out += fmt.Sprintf(" (then %v%s)", branch.condition.accept(v), v.body(branch.body))
	}
	if stmt.elseBranch != nil {
		out += fmt.Sprintf(" (else%s)", v.body(stmt.elseBranch))
	}
	return out + ")"
}

func (v stringVisitor) visitClassicForStmt(stmt *classicForStmt) R {
	return fmt.Sprintf(
		"(for %v %v %v%s)",
		stmt.initializer.accept(v),
		stmt.condition.accept(v),
		stmt.increment.accept(v),
		v.body(stmt.body),
	)
}

func (v stringVisitor) visitWhileStmt(stmt *whileStmt) R {
	return fmt.Sprintf("(while %v%s)", stmt.condition.accept(v), v.body(stmt.body))
}

func (v stringVisitor) visitReturnStmt(stmt *returnStmt) R {
	if stmt.value == nil {
		return "(return)"
	}
	return fmt.Sprintf("(return %v)", stmt.value.accept(v))
}

func (v stringVisitor) visitBreakStmt(stmt *breakStmt) R {
	return "(break)"
}

func (v stringVisitor) visitContinueStmt(stmt *continueStmt) R {
	return "(continue)"
}

func (v stringVisitor) visitBlockStmt(stmt *blockStmt) R {
	return "(block" + v.body(stmt) + ")"
}

func (v stringVisitor) visitAssignExpr(expr *assignExpr) R {
	return fmt.Sprintf("(set %s %v)", expr.name.lexeme, expr.value.accept(v))
}

func (v stringVisitor) visitCompoundAssignExpr(expr *compoundAssignExpr) R {
	return fmt.Sprintf("(%s %s %v)", expr.operator.lexeme, expr.name.lexeme, expr.value.accept(v))
}

func (v stringVisitor) visitBinaryExpr(expr *binaryExpr) R {
	return fmt.Sprintf("(%s %v %v)", expr.operator.lexeme, expr.left.accept(v), expr.right.accept(v))
}

func (v stringVisitor) visitUnaryExpr(expr *unaryExpr) R {
	return fmt.Sprintf("(%s %v)", expr.operator.lexeme, expr.right.accept(v))
}

func (v stringVisitor) visitCallExpr(expr *callExpr) R {
	out := fmt.Sprintf("(call %v", expr.callee.accept(v))
	for _, arg := range expr.arguments {
		out += fmt.Sprintf(" %v", arg.accept(v))
	}
	return out + ")"
}

func (v stringVisitor) visitGroupingExpr(expr *groupingExpr) R {
	return expr.expression.accept(v)
}

func (v stringVisitor) visitLiteralExpr(expr *literalExpr) R {
	return expr.value.Repr()
}

func (v stringVisitor) visitVariableExpr(expr *variableExpr) R {
	return expr.name.lexeme
}
