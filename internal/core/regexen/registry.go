// Package regexen composes the entity grammar out of named fragments.
//
// A fragment's source may embed other fragments with #{name} placeholders.
// Resolution substitutes every placeholder with the resolved source of the
// referenced fragment and unions the modifier flags of everything embedded.
// Build runs the whole grammar through a Registry once and freezes the
// result into an immutable Set that is safe for concurrent use.
package regexen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lueurxax/tweet-entities/internal/core/charclass"
	errs "github.com/lueurxax/tweet-entities/internal/core/errors"
)

// Flag is a set of pattern modifiers.
type Flag uint8

const (
	FlagCaseInsensitive Flag = 1 << iota
	FlagMultiline
	// FlagGreedy is kept for source compatibility; matching is greedy by default.
	FlagGreedy
	// FlagUnicode is set on every fragment. The matcher always operates on runes.
	FlagUnicode
)

// Has reports whether every flag of o is set in f.
func (f Flag) Has(o Flag) bool {
	return f&o == o
}

// String renders the flags as pattern modifiers, e.g. "imu".
func (f Flag) String() string {
	var sb strings.Builder

	if f.Has(FlagCaseInsensitive) {
		sb.WriteByte('i')
	}

	if f.Has(FlagMultiline) {
		sb.WriteByte('m')
	}

	if f.Has(FlagUnicode) {
		sb.WriteByte('u')
	}

	return sb.String()
}

// Fragment is a named unit of pattern text.
type Fragment struct {
	Name   string
	Source string
	Flags  Flag
}

// Pattern is a fully resolved fragment: no placeholders left, flags accumulated.
type Pattern struct {
	Name   string
	Source string
	Flags  Flag
}

func (p Pattern) String() string {
	return "/" + p.Source + "/" + p.Flags.String()
}

// Reference records a placeholder that named an undefined fragment.
type Reference struct {
	Fragment string
	Name     string
}

var placeholderRegex = regexp.MustCompile(`#\{(\w+)\}`)

// Registry collects fragments and resolves them. It is not safe for
// concurrent use; freeze it into a Set first.
type Registry struct {
	fragments map[string]Fragment
	order     []string
	resolved  map[string]Pattern
	undefined []Reference
	err       error
}

func NewRegistry() *Registry {
	return &Registry{
		fragments: make(map[string]Fragment),
		resolved:  make(map[string]Pattern),
	}
}

// Define registers a fragment. Redefining a name is an error; the first
// error is kept and reported by Err and ResolveAll.
func (r *Registry) Define(name, source string, flags Flag) {
	if r.err != nil {
		return
	}

	if _, ok := r.fragments[name]; ok {
		r.err = fmt.Errorf("%w: %s", errs.ErrDuplicateFragment, name)

		return
	}

	r.fragments[name] = Fragment{Name: name, Source: source, Flags: flags | FlagUnicode}
	r.order = append(r.order, name)
}

// DefineClass registers the body of a character class produced by build.
func (r *Registry) DefineClass(name string, build func() (*charclass.Class, error)) {
	if r.err != nil {
		return
	}

	c, err := build()
	if err != nil {
		r.fail(fmt.Errorf("building %s: %w", name, err))

		return
	}

	r.Define(name, c.String(), 0)
}

func (r *Registry) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Err returns the first definition error.
func (r *Registry) Err() error {
	return r.err
}

// Fragment returns the unresolved fragment registered under name.
func (r *Registry) Fragment(name string) (Fragment, bool) {
	f, ok := r.fragments[name]

	return f, ok
}

// Names lists the fragment names in definition order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Undefined lists the placeholders that referenced unknown fragments during
// resolution so far.
func (r *Registry) Undefined() []Reference {
	return append([]Reference(nil), r.undefined...)
}

// Resolve returns the final pattern for name.
func (r *Registry) Resolve(name string) (Pattern, error) {
	if r.err != nil {
		return Pattern{}, r.err
	}

	if _, ok := r.fragments[name]; !ok {
		return Pattern{}, fmt.Errorf("%w: %s", errs.ErrUnknownFragment, name)
	}

	return r.resolve(name, make(map[string]bool))
}

// ResolveAll resolves every fragment in definition order.
func (r *Registry) ResolveAll() (map[string]Pattern, error) {
	if r.err != nil {
		return nil, r.err
	}

	out := make(map[string]Pattern, len(r.order))

	for _, name := range r.order {
		p, err := r.resolve(name, make(map[string]bool))
		if err != nil {
			return nil, err
		}

		out[name] = p
	}

	return out, nil
}

// resolve expands dependencies before the fragment that embeds them.
// visiting holds the names on the current path and detects cycles.
func (r *Registry) resolve(name string, visiting map[string]bool) (Pattern, error) {
	if p, ok := r.resolved[name]; ok {
		return p, nil
	}

	if visiting[name] {
		return Pattern{}, fmt.Errorf("%w: %s", errs.ErrFragmentCycle, name)
	}

	visiting[name] = true
	defer delete(visiting, name)

	frag := r.fragments[name]
	flags := frag.Flags

	var resolveErr error

	source := placeholderRegex.ReplaceAllStringFunc(frag.Source, func(placeholder string) string {
		if resolveErr != nil {
			return ""
		}

		ref := placeholderRegex.FindStringSubmatch(placeholder)[1]

		dep, err := r.lookupReference(name, ref, visiting)
		if err != nil {
			resolveErr = err

			return ""
		}

		flags |= dep.Flags

		return dep.Source
	})

	if resolveErr != nil {
		return Pattern{}, resolveErr
	}

	p := Pattern{Name: name, Source: source, Flags: flags}
	r.resolved[name] = p

	return p, nil
}

// lookupReference resolves one placeholder. A name that was never defined
// resolves to the empty pattern with no flags; the miss is recorded so the
// build step can report it.
func (r *Registry) lookupReference(from, ref string, visiting map[string]bool) (Pattern, error) {
	if _, ok := r.fragments[ref]; !ok {
		r.undefined = append(r.undefined, Reference{Fragment: from, Name: ref})

		return Pattern{}, nil
	}

	return r.resolve(ref, visiting)
}
