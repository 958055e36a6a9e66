// Package rpn implements lexing of reverse polish notation input lines, and
// the commands they denote, executed against an integer stack.
package rpn

import (
	"fmt"
	"strconv"
	"strings"
)

// Op names one of the four binary arithmetic operators.
type Op uint8

// Operators, in the order they appear in the input grammar.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

var opSymbols = [...]string{"+", "-", "*", "/"}

func (op Op) String() string {
	if int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// TokenType discriminates Token values.
type TokenType uint8

// Token types.
const (
	TokenLiteral TokenType = iota
	TokenOperator
	TokenTerminate
)

// Token is a single classified input fragment.
type Token struct {
	Type  TokenType
	Value int64
	Op    Op
}

func (tok Token) String() string {
	switch tok.Type {
	case TokenLiteral:
		return strconv.FormatInt(tok.Value, 10)
	case TokenOperator:
		return tok.Op.String()
	case TokenTerminate:
		return "q"
	}
	return fmt.Sprintf("Token(%d)", uint8(tok.Type))
}

// Command converts the token into the command it denotes.
func (tok Token) Command() Command {
	switch tok.Type {
	case TokenLiteral:
		return Insert(tok.Value)
	case TokenOperator:
		return Arith(tok.Op)
	case TokenTerminate:
		return Terminate()
	}
	panic(fmt.Sprintf("invalid token type %d", uint8(tok.Type)))
}

// ParseError reports an input fragment that is neither an integer, an
// operator, nor a quit request.
type ParseError struct {
	Fragment string
	Column   int
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("unexpected token %q at column %d", err.Fragment, err.Column)
}

// Lex splits a line on single spaces, dropping empty fragments, and
// classifies every fragment. Any trailing line ending is ignored.
func Lex(line string) ([]Token, error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	var toks []Token
	col := 1
	for _, frag := range strings.Split(line, " ") {
		at := col
		col += len(frag) + 1
		if frag == "" {
			continue
		}
		tok, ok := classify(frag)
		if !ok {
			return nil, &ParseError{Fragment: frag, Column: at}
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func classify(frag string) (Token, bool) {
	if n, err := strconv.ParseInt(frag, 10, 64); err == nil {
		return Token{Type: TokenLiteral, Value: n}, true
	}
	switch frag {
	case "+":
		return Token{Type: TokenOperator, Op: OpAdd}, true
	case "-":
		return Token{Type: TokenOperator, Op: OpSub}, true
	case "*":
		return Token{Type: TokenOperator, Op: OpMul}, true
	case "/":
		return Token{Type: TokenOperator, Op: OpDiv}, true
	case "q", "Q":
		return Token{Type: TokenTerminate}, true
	}
	return Token{}, false
}

// Tokenize lexes a line into the commands it denotes, in left to right
// execution order.
func Tokenize(line string) ([]Command, error) {
	toks, err := Lex(line)
	if err != nil {
		return nil, err
	}
	cmds := make([]Command, len(toks))
	for i, tok := range toks {
		cmds[i] = tok.Command()
	}
	return cmds, nil
}
