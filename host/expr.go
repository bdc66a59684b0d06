// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ExprError reports an expression that could not be evaluated to an
// integer.
type ExprError string

func (err ExprError) Error() string {
	return f("'%v' is not a valid expression", string(err))
}

var (
	hexLiteral = regexp.MustCompile(`\$([0-9a-fA-F]+)`)
	bareNumber = regexp.MustCompile(`\b[0-9][0-9a-fA-F]*\b`)
)

// An exprEvaluator evaluates monitor arguments such as "$1000+x*2". Numbers
// prefixed with '$' are hexadecimal. In hex mode, bare numbers are
// hexadecimal too. The CPU registers a, x, y, sp and pc may be used as
// identifiers.
type exprEvaluator struct {
	hexMode bool
}

func newExprEvaluator() *exprEvaluator {
	return &exprEvaluator{}
}

// Rewrite monitor number syntax into starlark integer literals.
func (e *exprEvaluator) rewrite(expr string) string {
	expr = hexLiteral.ReplaceAllString(expr, "0x$1")
	if e.hexMode {
		expr = bareNumber.ReplaceAllString(expr, "0x$0")
	}
	return expr
}

// Eval evaluates the expression with the identifiers in 'vars' predeclared.
func (e *exprEvaluator) Eval(expr string, vars map[string]int64) (int64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, ExprError(expr)
	}

	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for k, v := range vars {
		pred[k] = starlark.MakeInt64(v)
	}

	prog := "rc=" + e.rewrite(expr) + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return 0, ExprError(expr)
	}
	rc, ok := dict["rc"].(starlark.Int)
	if !ok {
		return 0, ExprError(expr)
	}
	v, ok := rc.Int64()
	if !ok {
		return 0, ExprError(expr)
	}
	return v, nil
}
