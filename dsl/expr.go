package dsl

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	attrio "github.com/attrio/attrio"
)

// RequiredIfExpr requires the attribute when the expression evaluates
// truthily against the node at keyPath. The referenced node is exposed to
// the expression as "value":
//
//	dsl.RequiredIfExpr("status", `value in ["active", "trial"]`)
//
// The expression is compiled when the option is applied; compile failures
// surface as configuration errors at Build time.
func RequiredIfExpr(keyPath, expression string) Option {
	return func(o *optionSet) {
		program, err := expr.Compile(expression)
		if err != nil {
			o.errs = append(o.errs, &attrio.ConfigError{
				Option: attrio.OptionRequiredIf,
				Reason: fmt.Sprintf("compiling expression %q: %v", expression, err),
			})
			return
		}
		o.m[attrio.OptionRequiredIf] = &attrio.Dependency{
			KeyPath: keyPath,
			Fn:      exprPredicate(program),
		}
	}
}

func exprPredicate(program *vm.Program) func(any) bool {
	return func(node any) bool {
		out, err := vm.Run(program, map[string]any{"value": node})
		if err != nil {
			return false
		}
		b, ok := out.(bool)
		return ok && b
	}
}
