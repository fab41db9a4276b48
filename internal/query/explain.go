package query

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Explain renders parsed expressions as an indented tree, one branch per clause.
func Explain(exprs []Expr) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("query (%d clauses)", len(exprs)))
	for _, expr := range exprs {
		addExprNode(tree, expr)
	}
	return tree.String()
}

func addExprNode(branch treeprint.Tree, expr Expr) {
	switch e := expr.(type) {
	case ColumnFilter:
		addExprNode(branch.AddBranch("ColumnFilter"), e.Args)
	case ArgList:
		list := branch.AddBranch(fmt.Sprintf("ArgList (%d)", len(e.Items)))
		for _, item := range e.Items {
			addExprNode(list, item)
		}
	case Arg:
		branch.AddNode(fmt.Sprintf("Arg %q", e.Value))
	default:
		branch.AddNode(expr.String())
	}
}
