// Package semantic provides static checks for robot programs.
//
// The language has no static errors beyond syntax: every parsed program
// can run. The analyzer therefore only reports warnings:
//   - Statements that follow an unbounded loop in the same sequence
//   - Variables that are read but never assigned (they always read as 0)
//   - Division by a literal zero
//   - Repeat counts that are literal and not positive
package semantic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kolkov/robolang/internal/token"
)

// Warning represents a non-fatal issue found in a program.
type Warning struct {
	Pos     token.Position
	Message string
}

// String returns the warning as a formatted string.
func (w *Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Pos, w.Message)
}

// WarningList is a collection of warnings.
type WarningList []*Warning

// Add appends a warning to the list.
func (wl *WarningList) Add(pos token.Position, format string, args ...any) {
	*wl = append(*wl, &Warning{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// Sort orders the warnings by source position.
func (wl WarningList) Sort() {
	sort.SliceStable(wl, func(i, j int) bool {
		return wl[i].Pos.Offset < wl[j].Pos.Offset
	})
}

// String joins the warnings one per line.
func (wl WarningList) String() string {
	var sb strings.Builder
	for i, w := range wl {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(w.String())
	}
	return sb.String()
}

// Common warning messages.
const (
	warnUnreachable = "unreachable statement after loop"
	warnNeverSet    = "variable %s is read but never assigned"
	warnDivZero     = "division by zero"
	warnEmptyRepeat = "%s count %d performs nothing"
)
