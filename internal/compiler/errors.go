package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oakwood-commons/dotree/internal/parser"
)

// ErrMissingRoot is returned when no menu is named "root".
var ErrMissingRoot = errors.New(`no menu named "root"`)

// FormatChain renders a menu chain as "root > git > commit".
func FormatChain(chain []string) string {
	return strings.Join(chain, " > ")
}

// DuplicateMenuError reports two menus sharing a name.
type DuplicateMenuError struct {
	Name   string
	First  parser.Pos
	Second parser.Pos
}

func (e *DuplicateMenuError) Error() string {
	return fmt.Sprintf("menu %q declared twice (lines %d and %d)", e.Name, e.First.Line, e.Second.Line)
}

// DuplicateSnippetError reports two snippets sharing a name.
type DuplicateSnippetError struct {
	Name   string
	First  parser.Pos
	Second parser.Pos
}

func (e *DuplicateSnippetError) Error() string {
	return fmt.Sprintf("snippet %q declared twice (lines %d and %d)", e.Name, e.First.Line, e.Second.Line)
}

// UndefinedSymbolError reports an entry naming a menu that does not exist.
// Chain is the path of menus leading to the offending entry.
type UndefinedSymbolError struct {
	Name  string
	Chain []string
	Pos   parser.Pos
}

func (e *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("undefined symbol %q at line %d (in %s)", e.Name, e.Pos.Line, FormatChain(e.Chain))
}

// MenuCycleError reports a menu that contains itself. The chain ends with the
// repeated menu name.
type MenuCycleError struct {
	Chain []string
}

func (e *MenuCycleError) Error() string {
	return "menu cycle: " + FormatChain(e.Chain)
}

// DuplicateKeyPathError reports two entries of one menu with identical keys.
type DuplicateKeyPathError struct {
	Keys   string
	Chain  []string
	First  parser.Pos
	Second parser.Pos
}

func (e *DuplicateKeyPathError) Error() string {
	return fmt.Sprintf("key path %q used twice in %s (lines %d and %d)",
		e.Keys, FormatChain(e.Chain), e.First.Line, e.Second.Line)
}
