package routing

import (
	"fmt"
	"sort"
)

// Route describes a resolved translation route. Models holds the model
// identifiers to invoke in order. Hops is nil for direct routes; for chained
// routes it lists the pair labels ("zh-en", "en-el") in invocation order.
type Route struct {
	Models []string
	Hops   []string
}

// Direct reports whether the route invokes a single model.
func (r *Route) Direct() bool {
	return len(r.Hops) == 0
}

// Table is the immutable routing table built once from configuration.
type Table struct {
	names        map[string]string
	direct       map[string]map[string]string
	intermediate string
	valid        []string
}

// NewTable builds and validates a routing table.
// names maps language codes to display names and defines the valid language
// set. direct maps source code to target code to model identifier.
func NewTable(names map[string]string, direct map[string]map[string]string, intermediate string) (*Table, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no languages configured")
	}

	valid := make([]string, 0, len(names))
	for code := range names {
		valid = append(valid, code)
	}
	sort.Strings(valid)

	isValid := func(code string) bool {
		_, ok := names[code]
		return ok
	}

	for src, targets := range direct {
		if !isValid(src) {
			return nil, fmt.Errorf("route table references unknown source language %q", src)
		}
		for tgt, model := range targets {
			if !isValid(tgt) {
				return nil, fmt.Errorf("route table references unknown target language %q", tgt)
			}
			if src == tgt {
				return nil, fmt.Errorf("route table contains same-language pair %q", src)
			}
			if model == "" {
				return nil, fmt.Errorf("route %s-%s has an empty model identifier", src, tgt)
			}
		}
	}

	if intermediate != "" && !isValid(intermediate) {
		return nil, fmt.Errorf("default intermediate language %q is not in the configured language set", intermediate)
	}

	return &Table{
		names:        names,
		direct:       direct,
		intermediate: intermediate,
		valid:        valid,
	}, nil
}

// Resolve returns the route for a language pair: the direct model when one is
// configured, otherwise a two-hop chain through the default intermediate
// language. The hop depth is capped at one intermediate by construction.
func (t *Table) Resolve(from, to string) (*Route, error) {
	if !t.IsValidLanguage(from) {
		return nil, &InvalidLanguageError{Code: from, Valid: t.valid}
	}
	if !t.IsValidLanguage(to) {
		return nil, &InvalidLanguageError{Code: to, Valid: t.valid}
	}
	if from == to {
		return nil, ErrSameLanguage
	}

	if model, ok := t.directModel(from, to); ok {
		return &Route{Models: []string{model}}, nil
	}

	mid := t.intermediate
	if mid == "" || mid == from || mid == to {
		return nil, &UnsupportedRouteError{From: from, To: to}
	}

	first, okFirst := t.directModel(from, mid)
	second, okSecond := t.directModel(mid, to)
	if !okFirst || !okSecond {
		return nil, &UnsupportedRouteError{From: from, To: to}
	}

	return &Route{
		Models: []string{first, second},
		Hops:   []string{from + "-" + mid, mid + "-" + to},
	}, nil
}

// IsValidLanguage reports whether the code belongs to the configured set.
func (t *Table) IsValidLanguage(code string) bool {
	_, ok := t.names[code]
	return ok
}

// ValidLanguages returns the configured language codes in sorted order.
func (t *Table) ValidLanguages() []string {
	out := make([]string, len(t.valid))
	copy(out, t.valid)
	return out
}

// LanguageName returns the display name for a code, falling back to the code.
func (t *Table) LanguageName(code string) string {
	if name, ok := t.names[code]; ok {
		return name
	}
	return code
}

// LanguageNames returns a copy of the code to display-name mapping.
func (t *Table) LanguageNames() map[string]string {
	out := make(map[string]string, len(t.names))
	for k, v := range t.names {
		out[k] = v
	}
	return out
}

// Intermediate returns the default intermediate language code.
func (t *Table) Intermediate() string {
	return t.intermediate
}

// AvailableRoutes returns, per source code, the sorted target codes reachable
// either directly or through the default intermediate language.
func (t *Table) AvailableRoutes() map[string][]string {
	out := make(map[string][]string, len(t.valid))
	for _, from := range t.valid {
		var targets []string
		for _, to := range t.valid {
			if from == to {
				continue
			}
			if _, err := t.Resolve(from, to); err == nil {
				targets = append(targets, to)
			}
		}
		if len(targets) > 0 {
			out[from] = targets
		}
	}
	return out
}

// ModelIDs returns the distinct model identifiers in the table, sorted.
func (t *Table) ModelIDs() []string {
	seen := make(map[string]struct{})
	for _, targets := range t.direct {
		for _, model := range targets {
			seen[model] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for model := range seen {
		out = append(out, model)
	}
	sort.Strings(out)
	return out
}

func (t *Table) directModel(from, to string) (string, bool) {
	targets, ok := t.direct[from]
	if !ok {
		return "", false
	}
	model, ok := targets[to]
	return model, ok
}
