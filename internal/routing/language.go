// Package routing implements the static translation route table: direct
// language-pair lookups plus a single configured intermediate hop.
package routing

import (
	"fmt"
	"strings"
)

// ErrSameLanguage is returned when source and target languages are identical.
var ErrSameLanguage = fmt.Errorf("source and target languages cannot be the same")

// InvalidLanguageError reports a language code outside the configured set.
type InvalidLanguageError struct {
	Code  string
	Valid []string
}

func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("invalid language code: %s, must be one of: %s", e.Code, strings.Join(e.Valid, ", "))
}

// UnsupportedRouteError reports a language pair with no direct model and no
// usable intermediate chain.
type UnsupportedRouteError struct {
	From string
	To   string
}

func (e *UnsupportedRouteError) Error() string {
	return fmt.Sprintf("no translation route available from %s to %s", e.From, e.To)
}
