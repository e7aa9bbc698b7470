package internal

import (
	"fmt"
)

type callStack struct {
	function  string
	loopCount int
}

// parser stores parser data
type parser struct {
	current int

	cls  []*callStack
	defs map[string]bool

	state *interpreterState
}

func (p *parser) getParsingContext() *callStack {
	return p.cls[len(p.cls)-1]
}

func (p *parser) enterFunction(name string) {
	p.cls = append(p.cls, &callStack{
		function:  name,
		loopCount: 0,
	})
}

func (p *parser) leaveFunction() {
	p.cls = p.cls[:len(p.cls)-1]
}

func (p *parser) enterLoop() {
	p.getParsingContext().loopCount++
}

func (p *parser) leaveLoop() {
	p.getParsingContext().loopCount--
}

func (p *parser) insideLoop() bool {
	return p.getParsingContext().loopCount != 0
}

const maxFunctionParams = 255

func (p *parser) parse() {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(stopParsing); !ok {
				panic(r)
			}
		}
	}()
	p.cls = make([]*callStack, 0)
	p.defs = make(map[string]bool)
	p.enterFunction("")
	for !p.isAtEnd() {
		if st := p.declaration(); st != nil {
			p.state.stmts = append(p.state.stmts, st)
		}
	}
}

// declaration parses a top level statement, the only place a def may appear
func (p *parser) declaration() stmt {
	if p.match(tkDef) {
		return p.fn()
	}
	return p.statement()
}

func (p *parser) fn() *fnStmt {
	name := p.consume(tkIdentifier, expFunctionName)
	if p.defs[name.lexeme] {
		p.semanticError(name, errDuplicateDef, name.lexeme)
	}
	p.defs[name.lexeme] = true

	p.enterFunction(name.lexeme)
	defer p.leaveFunction()

	p.consume(tkLeftParen, expLeftParen)

	var params []*token
	if !p.check(tkRightParen) {
		for {
			if len(params) >= maxFunctionParams {
				p.fatalSemanticError(p.peek(), errMaxParameters)
			}
			params = append(params, p.consume(tkIdentifier, expParam))
			if !p.match(tkComma) {
				break
			}
		}
	}
	p.consume(tkRightParen, expRightParen)

	body := p.block(tkEnd)
	body.end = p.consume(tkEnd, expEnd)

	return &fnStmt{
		name:   name,
		params: params,
		body:   body,
	}
}

func (p *parser) statement() stmt {
	if p.match(tkSemicolon) {
		return nil
	}
	if p.check(tkDef) {
		p.fatalSemanticError(p.peek(), errNestedDef)
	}
	if p.match(tkIf) {
		return p.ifStmt()
	}
	if p.match(tkFor) {
		return p.forLoop()
	}
	if p.match(tkWhile) {
		return p.while()
	}
	if p.match(tkReturn) {
		return p.ret()
	}
	if p.match(tkBreak) {
		return p.brk()
	}
	if p.match(tkContinue) {
		return p.cont()
	}
	return p.expressionStmt()
}

// block collects statements up to, not including, one of the terminators
func (p *parser) block(terminators ...tokenType) *blockStmt {
	block := &blockStmt{stmts: make([]stmt, 0)}
	for !p.check(terminators...) && !p.isAtEnd() {
		if st := p.statement(); st != nil {
			block.stmts = append(block.stmts, st)
		}
	}
	return block
}

func (p *parser) condition() expr {
	p.consume(tkLeftParen, expLeftParen)
	cond := p.expression()
	p.consume(tkRightParen, expRightParen)
	return cond
}

func (p *parser) ifStmt() stmt {
	st := &ifStmt{
		keyword: p.previous(),
	}

	for {
		cond := p.condition()
		body := p.block(tkElif, tkElse, tkEnd)
		st.branches = append(st.branches, &struct {
			condition expr
			body      *blockStmt
		}{
			condition: cond,
			body:      body,
		})
		if !p.match(tkElif) {
			break
		}
	}

	if p.match(tkElse) {
		st.elseBranch = p.block(tkEnd)
	}

	p.consume(tkEnd, expEnd)

	return st
}

func (p *parser) forLoop() stmt {
	keyword := p.previous()

	p.consume(tkLeftParen, expLeftParen)
	init := p.expression()
	p.consume(tkComma, expComma)
	cond := p.expression()
	p.consume(tkComma, expComma)
	inc := p.expression()
	p.consume(tkRightParen, expRightParen)

	p.enterLoop()
	body := p.block(tkEnd)
	p.leaveLoop()
	body.end = p.consume(tkEnd, expEnd)

	return &classicForStmt{
		keyword:     keyword,
		initializer: init,
		condition:   cond,
		increment:   inc,
		body:        body,
	}
}

func (p *parser) while() stmt {
	keyword := p.previous()
	cond := p.condition()

	p.enterLoop()
	body := p.block(tkEnd)
	p.leaveLoop()
	body.end = p.consume(tkEnd, expEnd)

	return &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
}

func (p *parser) ret() stmt {
	var value expr
	keyword := p.previous()
	if !p.check(tkSemicolon) {
		value = p.expression()
	}
	p.consume(tkSemicolon, expSemicolon)
	return &returnStmt{
		keyword: keyword,
		value:   value,
	}
}

func (p *parser) brk() stmt {
	keyword := p.previous()
	if !p.insideLoop() {
		p.semanticError(keyword, errOnlyAllowedInsideLoop, keyword.lexeme)
	}
	p.consume(tkSemicolon, expSemicolon)
	return &breakStmt{
		keyword: keyword,
	}
}

func (p *parser) cont() stmt {
	keyword := p.previous()
	if !p.insideLoop() {
		p.semanticError(keyword, errOnlyAllowedInsideLoop, keyword.lexeme)
	}
	p.consume(tkSemicolon, expSemicolon)
	return &continueStmt{
		keyword: keyword,
	}
}

func (p *parser) expressionStmt() stmt {
	expr := p.expression()
	p.consume(tkSemicolon, expSemicolon)
	return &exprStmt{
		last:       p.previous(),
		expression: expr,
	}
}

func (p *parser) expression() expr {
	return p.assignment()
}

func (p *parser) assignment() expr {
	expr := p.or()
	if p.match(tkEqual) {
		equal := p.previous()
		value := p.assignment()
		if variable, isVar := expr.(*variableExpr); isVar {
			return &assignExpr{
				name:  variable.name,
				value: value,
			}
		}
		p.state.fatalError(&ParseError{Line: equal.line, Expected: expTarget, Found: "expression"})
	}
	if p.match(tkPlusEqual, tkMinusEqual, tkStarEqual, tkSlashEqual, tkModEqual,
		tkAmpEqual, tkPipeEqual, tkCaretEqual, tkLessLessEqual, tkGreaterGreaterEqual) {
		operator := p.previous()
		value := p.assignment()
		if variable, isVar := expr.(*variableExpr); isVar {
			return &compoundAssignExpr{
				name:     variable.name,
				operator: operator,
				value:    value,
			}
		}
		p.state.fatalError(&ParseError{Line: operator.line, Expected: expTarget, Found: "expression"})
	}
	return expr
}

func (p *parser) or() expr {
	return p.binary(p.xor, tkOr)
}

func (p *parser) xor() expr {
	return p.binary(p.and, tkCaretCaret)
}

func (p *parser) and() expr {
	return p.binary(p.bitOr, tkAnd)
}

func (p *parser) bitOr() expr {
	return p.binary(p.bitXor, tkPipe)
}

func (p *parser) bitXor() expr {
	return p.binary(p.bitAnd, tkCaret)
}

func (p *parser) bitAnd() expr {
	return p.binary(p.equality, tkAmp)
}

func (p *parser) equality() expr {
	return p.binary(p.comparison, tkEqualEqual, tkBangEqual, tkEqualEqualEqual, tkBangEqualEqual)
}

func (p *parser) comparison() expr {
	return p.binary(p.shift, tkGreater, tkGreaterEqual, tkLess, tkLessEqual)
}

func (p *parser) shift() expr {
	return p.binary(p.addition, tkLessLess, tkGreaterGreater)
}

func (p *parser) addition() expr {
	return p.binary(p.multiplication, tkPlus, tkMinus)
}

func (p *parser) multiplication() expr {
	return p.binary(p.unary, tkSlash, tkMod, tkStar)
}

// binary parses a left associative level whose operands come from next
func (p *parser) binary(next func() expr, operators ...tokenType) expr {
	expr := next()
	for p.match(operators...) {
		operator := p.previous()
		right := next()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) unary() expr {
	if p.match(tkBang, tkMinus, tkPlus) {
		operator := p.previous()
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	return p.call()
}

func (p *parser) call() expr {
	expr := p.primary()
	for p.match(tkLeftParen) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *parser) finishCall(callee expr) expr {
	arguments := make([]expr, 0)
	if !p.check(tkRightParen) {
		for {
			if len(arguments) >= maxFunctionParams {
				p.fatalSemanticError(p.peek(), errMaxArguments)
			}
			arguments = append(arguments, p.expression())
			if !p.match(tkComma) {
				break
			}
		}
	}
	paren := p.consume(tkRightParen, expRightParen)
	return &callExpr{
		callee:    callee,
		arguments: arguments,
		paren:     paren,
	}
}

func (p *parser) primary() expr {
	if p.match(tkNumber, tkString) {
		return &literalExpr{value: p.previous().literal.(slateValue)}
	}
	if p.match(tkFalse) {
		return &literalExpr{value: slateBool(false)}
	}
	if p.match(tkTrue) {
		return &literalExpr{value: slateBool(true)}
	}
	if p.match(tkNull) {
		return &literalExpr{value: null}
	}
	if p.match(tkIdentifier) {
		return &variableExpr{name: p.previous()}
	}
	if p.match(tkLeftParen) {
		expr := p.expression()
		p.consume(tkRightParen, expRightParen)
		return &groupingExpr{expression: expr}
	}

	p.state.fatalError(&ParseError{Line: p.peek().line, Expected: expExpression, Found: p.peek().describe()})
	return nil
}

// semanticError records a rule violation and keeps parsing
func (p *parser) semanticError(at *token, err error, detail string) {
	p.state.setError(&ParseError{Line: at.line, Expected: fmt.Sprintf("%s: %s", err, detail)})
}

func (p *parser) fatalSemanticError(at *token, err error) {
	p.state.fatalError(&ParseError{Line: at.line, Expected: err.Error()})
}

func (p *parser) consume(tk tokenType, expected string) *token {
	if p.check(tk) {
		return p.advance()
	}

	p.state.fatalError(&ParseError{Line: p.peek().line, Expected: expected, Found: p.peek().describe()})
	return nil
}

func (p *parser) advance() *token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(tokens ...tokenType) bool {
	if p.check(tokens...) {
		p.current++
		return true
	}
	return false
}

func (p *parser) check(tokens ...tokenType) bool {
	current := p.peek().token
	for _, tk := range tokens {
		if current == tk {
			return true
		}
	}
	return false
}

func (p *parser) peek() *token {
	return &p.state.tokens[p.current]
}

func (p *parser) previous() *token {
	return &p.state.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == tkEOF
}
