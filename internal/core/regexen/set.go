package regexen

import (
	"fmt"
	"sort"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"

	errs "github.com/lueurxax/tweet-entities/internal/core/errors"
)

// BuildOptions configures the build step.
type BuildOptions struct {
	Logger *zerolog.Logger

	// MatchTimeout bounds a single match attempt of every compiled pattern.
	// Zero leaves matching unbounded.
	MatchTimeout time.Duration
}

// Set is the frozen result of resolving a registry. It has no mutation path
// and may be shared by any number of goroutines.
type Set struct {
	patterns  map[string]Pattern
	compiled  map[string]*regexp2.Regexp
	undefined []Reference
	timeout   time.Duration
}

// Build defines the entity grammar, resolves it and compiles its entry points.
func Build(opts BuildOptions) (*Set, error) {
	r := NewRegistry()
	DefineGrammar(r)

	return Freeze(r, EntryPoints, opts)
}

// Freeze resolves every fragment of r and compiles the named entry points.
// Placeholders that referenced undefined fragments are logged as warnings.
func Freeze(r *Registry, entryPoints []string, opts BuildOptions) (*Set, error) {
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	patterns, err := r.ResolveAll()
	if err != nil {
		return nil, fmt.Errorf("resolving fragments: %w", err)
	}

	undefined := r.Undefined()
	for _, ref := range undefined {
		logger.Warn().
			Str("fragment", ref.Fragment).
			Str("reference", ref.Name).
			Msg("placeholder references an undefined fragment, substituting empty pattern")
	}

	compiled := make(map[string]*regexp2.Regexp, len(entryPoints))

	for _, name := range entryPoints {
		p, ok := patterns[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrUnknownFragment, name)
		}

		re, err := compile(name, p.Source, p.Options(), opts.MatchTimeout)
		if err != nil {
			return nil, err
		}

		compiled[name] = re
	}

	logger.Debug().
		Int("fragments", len(patterns)).
		Int("compiled", len(compiled)).
		Int("undefined_references", len(undefined)).
		Msg("pattern set built")

	return &Set{
		patterns:  patterns,
		compiled:  compiled,
		undefined: undefined,
		timeout:   opts.MatchTimeout,
	}, nil
}

func compile(name, source string, options regexp2.RegexOptions, timeout time.Duration) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(source, options)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrPatternCompile, name, err)
	}

	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	return re, nil
}

// Options maps the pattern flags onto matcher options.
func (p Pattern) Options() regexp2.RegexOptions {
	opts := regexp2.None

	if p.Flags.Has(FlagCaseInsensitive) {
		opts |= regexp2.IgnoreCase
	}

	if p.Flags.Has(FlagMultiline) {
		opts |= regexp2.Multiline
	}

	return opts
}

// Pattern returns the resolved pattern registered under name.
func (s *Set) Pattern(name string) (Pattern, bool) {
	p, ok := s.patterns[name]

	return p, ok
}

// Source returns the resolved source of name, or "" when it is unknown.
func (s *Set) Source(name string) string {
	return s.patterns[name].Source
}

// Flags returns the accumulated flags of name.
func (s *Set) Flags(name string) Flag {
	return s.patterns[name].Flags
}

// Regexp returns the compiled matcher for an entry point, or nil.
func (s *Set) Regexp(name string) *regexp2.Regexp {
	return s.compiled[name]
}

// MustRegexp is like Regexp but panics when name was not compiled.
func (s *Set) MustRegexp(name string) *regexp2.Regexp {
	re, ok := s.compiled[name]
	if !ok {
		panic(fmt.Sprintf("regexen: pattern %q is not an entry point", name))
	}

	return re
}

// Anchored compiles name so that it only matches a whole input.
func (s *Set) Anchored(name string) (*regexp2.Regexp, error) {
	p, ok := s.patterns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownFragment, name)
	}

	return compile(name, `\A(?:`+p.Source+`)\z`, p.Options(), s.timeout)
}

// Names lists every resolved fragment name, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.patterns))
	for name := range s.patterns {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Undefined lists the placeholders that resolved to the empty pattern.
func (s *Set) Undefined() []Reference {
	return append([]Reference(nil), s.undefined...)
}
