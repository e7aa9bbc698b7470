package main

import (
	"fmt"
	"os"
	"strings"
)

// Usage: go run ./cmd/ast (Stmt|Expr)
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: ast (Stmt|Expr)")
		os.Exit(1)
	}
	var out string
	switch os.Args[1] {
	case "Stmt":
		out = generateAst("Stmt", []string{
			"Expr: last *token, expression expr",
			"Fn: name *token, params []*token, body *blockStmt",
			"If: keyword *token, branches []*struct{condition expr; body *blockStmt}, elseBranch *blockStmt",
			"ClassicFor: keyword *token, initializer expr, condition expr, increment expr, body *blockStmt",
			"While: keyword *token, condition expr, body *blockStmt",
			"Return: keyword *token, value expr",
			"Break: keyword *token",
			"Continue: keyword *token",
			"Block: end *token, stmts []stmt",
		})
	case "Expr":
		out = generateAst("Expr", []string{
			"Assign: name *token, value expr",
			"CompoundAssign: name *token, operator *token, value expr",
			"Binary: left expr, operator *token, right expr",
			"Unary: operator *token, right expr",
			"Call: callee expr, paren *token, arguments []expr",
			"Grouping: expression expr",
			"Literal: value slateValue",
			"Variable: name *token",
		})
	default:
		fmt.Fprintf(os.Stderr, "unknown node family %q\n", os.Args[1])
		os.Exit(1)
	}
	fmt.Print(out)
}

func generateAst(baseName string, types []string) string {
	out := "// Code generated by cmd/ast. DO NOT EDIT.\n\n"
	out += "package internal\n\n"

	// Start base interface
	out += "type " + strings.ToLower(baseName) + " interface {\n"
	out += "\taccept(" + strings.ToLower(baseName) + "Visitor) R\n"
	out += "}\n\n"
	// End base interface

	// Start Visitor interface
	out += fmt.Sprintf("type %sVisitor interface {\n", strings.ToLower(baseName))
	for _, t := range types {
		typeDef := strings.Split(t, ":")
		name := strings.TrimSpace(typeDef[0])
		structType := strings.ToLower(string(name[0])) + name[1:] + baseName
		out += "\tvisit" + name + baseName + "(" + strings.ToLower(baseName) + " *" + structType + ") R\n"
	}
	out += "}\n\n"
	// End Visitor interface

	// Start  structs
	for _, t := range types {
		typeDef := strings.SplitN(t, ":", 2)
		structName := strings.TrimSpace(typeDef[0])
		structFields := strings.TrimSpace(typeDef[1])
		out += generateType(baseName, structName, structFields)
	}
	// End structs

	return out
}

func generateType(baseName, name, fields string) string {
	// Start Structure Definition
	structName := strings.ToLower(string(name[0])) + name[1:] + baseName
	out := "type " + structName + " struct {\n"
	fieldArray := strings.Split(fields, ",")
	for _, field := range fieldArray {
		out += "\t" + strings.TrimSpace(field) + "\n"
	}
	out += "}\n\n"
	// End Structure Definition

	// Start Method Definition
	out += "func (s *" + structName + ") accept(visitor " + strings.ToLower(baseName) + "Visitor) R {\n"
	out += "\treturn visitor.visit" + name + baseName + "(s)\n"
	out += "}\n\n"
	// End Method Definition

	return out
}
