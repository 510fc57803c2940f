package gpr

import "errors"

// ErrSyntax indicates a malformed gene-reaction rule.
var ErrSyntax = errors.New("gpr: syntax error")
