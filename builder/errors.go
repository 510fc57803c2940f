// SPDX-License-Identifier: MIT
// Package: metavuln/builder
//
// errors.go - sentinel errors for the builder package.

package builder

import "errors"

// ErrTooSmall indicates that a size parameter is below its minimum.
var ErrTooSmall = errors.New("builder: parameter too small")

// ErrNeedRandSource indicates that a stochastic constructor ran without WithSeed.
var ErrNeedRandSource = errors.New("builder: random source required")

// ErrUnknownMetabolite indicates a constructor referenced an index that no
// earlier constructor created.
var ErrUnknownMetabolite = errors.New("builder: unknown metabolite index")
