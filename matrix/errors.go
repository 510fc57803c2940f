// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.

package matrix

import "errors"

var (
	// ErrNetworkNil indicates that a nil *core.Network was passed to a builder.
	ErrNetworkNil = errors.New("matrix: network is nil")

	// ErrBadShape is returned when the matrix would have no rows or no columns.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrUnknownReaction indicates a reaction id absent from the column index.
	ErrUnknownReaction = errors.New("matrix: unknown reaction id")
)
