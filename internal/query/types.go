// Package query implements the column selection language typed into the
// viewer's query line.
//
// A query is a whitespace separated list of clauses of the form
// column=<name>[,<name>...]. Each clause parses to a ColumnFilter; when a
// query holds several clauses the last one decides which columns are shown.
//
// Example usage:
//
//	exprs, err := query.Parse("column=name,age")
//	if err != nil {
//	    return err
//	}
//	tbl.Apply(exprs)
package query

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenString TokenType = iota // bare text between delimiters
	TokenIdent                   // text directly before '='
	TokenEqual                   // =
	TokenComma                   // ,
)

// ColumnKeyword is the only identifier accepted before '='.
const ColumnKeyword = "column"

func (t TokenType) String() string {
	switch t {
	case TokenString:
		return "String"
	case TokenIdent:
		return "Ident"
	case TokenEqual:
		return "Equal"
	case TokenComma:
		return "Comma"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

func (t Token) String() string {
	switch t.Type {
	case TokenString, TokenIdent:
		return fmt.Sprintf("%s(%q)", t.Type, t.Value)
	default:
		return t.Type.String()
	}
}

// Expr is a node of a parsed query.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// Arg is a single column name.
type Arg struct {
	Value string
}

// ArgList holds the arguments of a clause in source order.
type ArgList struct {
	Items []Expr
}

// ColumnFilter restricts the displayed columns to those named in Args.
type ColumnFilter struct {
	Args ArgList
}

func (Arg) exprNode()          {}
func (ArgList) exprNode()      {}
func (ColumnFilter) exprNode() {}

func (a Arg) String() string {
	return fmt.Sprintf("Arg(%q)", a.Value)
}

func (l ArgList) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "ArgList[" + strings.Join(parts, ", ") + "]"
}

func (f ColumnFilter) String() string {
	return "ColumnFilter(" + f.Args.String() + ")"
}

// Names returns the argument values of the filter in source order.
func (f ColumnFilter) Names() []string {
	names := make([]string, 0, len(f.Args.Items))
	for _, item := range f.Args.Items {
		if arg, ok := item.(Arg); ok {
			names = append(names, arg.Value)
		}
	}
	return names
}

// LastColumnFilter returns the most recent ColumnFilter in exprs.
func LastColumnFilter(exprs []Expr) (ColumnFilter, bool) {
	for i := len(exprs) - 1; i >= 0; i-- {
		if f, ok := exprs[i].(ColumnFilter); ok {
			return f, true
		}
	}
	return ColumnFilter{}, false
}
