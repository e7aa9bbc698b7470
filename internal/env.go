package internal

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

type env struct {
	enclosing *env
	values    map[string]slateValue
}

func newEnv(enclosing *env) *env {
	return &env{
		enclosing: enclosing,
		values:    make(map[string]slateValue),
	}
}

func (e *env) get(name *token) (slateValue, error) {
	for scope := e; scope != nil; scope = scope.enclosing {
		if value, ok := scope.values[name.lexeme]; ok {
			return value, nil
		}
	}
	return nil, &NameError{
		Line:        name.line,
		Name:        name.lexeme,
		Suggestions: e.suggest(name.lexeme),
	}
}

// lookup resolves name in this scope only
func (e *env) lookup(name string) (slateValue, bool) {
	value, ok := e.values[name]
	return value, ok
}

func (e *env) define(name string, value slateValue) {
	e.values[name] = value
}

// assign binds name in the current scope, creating it when absent
func (e *env) assign(name *token, value slateValue) {
	e.values[name.lexeme] = value
}

// suggest lists the visible names closest to name
func (e *env) suggest(name string) []string {
	seen := make(map[string]bool)
	var candidates []string
	for scope := e; scope != nil; scope = scope.enclosing {
		for key := range scope.values {
			if !seen[key] {
				seen[key] = true
				candidates = append(candidates, key)
			}
		}
	}
	sort.Strings(candidates)

	matches := fuzzy.Find(name, candidates)
	var out []string
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		out = append(out, matches[i].Str)
	}
	return out
}
