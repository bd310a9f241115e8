// Package entities finds URLs, hashtags, mentions, lists and cashtags in
// tweet-like text.
//
// An Extractor runs the compiled patterns of a regexen.Set over text and
// reports every entity with code point offsets. Extractors hold no mutable
// state and may be shared across goroutines.
package entities

import (
	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"

	"github.com/lueurxax/tweet-entities/internal/core/regexen"
)

// Options tune extraction.
type Options struct {
	// ExtractURLsWithoutProtocol accepts bare domains such as example.com.
	ExtractURLsWithoutProtocol bool

	// CheckURLOverlap drops hashtags, mentions and cashtags that fall
	// inside a URL.
	CheckURLOverlap bool
}

// DefaultOptions enables protocol-less URLs and URL overlap checks.
func DefaultOptions() Options {
	return Options{
		ExtractURLsWithoutProtocol: true,
		CheckURLOverlap:            true,
	}
}

type matcher struct {
	name string
	re   *regexp2.Regexp
}

type Extractor struct {
	opts   Options
	logger *zerolog.Logger

	hashSigns       matcher
	validHashtag    matcher
	endHashtagMatch matcher

	atSigns            matcher
	validMentionOrList matcher
	validReply         matcher
	endMentionMatch    matcher

	extractURL                 matcher
	validASCIIDomain           matcher
	invalidShortDomain         matcher
	invalidPrecedingNoProtocol matcher
	validTcoURL                matcher

	validCashtag matcher
	rtlChars     matcher
}

// New builds an extractor over set. A nil logger discards output.
func New(set *regexen.Set, opts Options, logger *zerolog.Logger) *Extractor {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	m := func(name string) matcher {
		return matcher{name: name, re: set.MustRegexp(name)}
	}

	return &Extractor{
		opts:   opts,
		logger: logger,

		hashSigns:       m(regexen.HashSigns),
		validHashtag:    m(regexen.ValidHashtag),
		endHashtagMatch: m(regexen.EndHashtagMatch),

		atSigns:            m(regexen.AtSigns),
		validMentionOrList: m(regexen.ValidMentionOrList),
		validReply:         m(regexen.ValidReply),
		endMentionMatch:    m(regexen.EndMentionMatch),

		extractURL:                 m(regexen.ExtractURL),
		validASCIIDomain:           m(regexen.ValidASCIIDomain),
		invalidShortDomain:         m(regexen.InvalidShortDomain),
		invalidPrecedingNoProtocol: m(regexen.InvalidURLWithoutProtocolPrecedingChars),
		validTcoURL:                m(regexen.ValidTcoURL),

		validCashtag: m(regexen.ValidCashtag),
		rtlChars:     m(regexen.RTLChars),
	}
}

// Options returns the options the extractor was built with.
func (e *Extractor) Options() Options {
	return e.opts
}

// WithOptions returns a copy of e that uses opts.
func (e *Extractor) WithOptions(opts Options) *Extractor {
	c := *e
	c.opts = opts

	return &c
}

// HasRTLChars reports whether text contains right-to-left script.
func (e *Extractor) HasRTLChars(text string) bool {
	return text != "" && e.matches(e.rtlChars, []rune(text))
}

// scan calls fn for every successive match of m in text. It returns false
// when the matcher gave up, for example on a match timeout.
func (e *Extractor) scan(m matcher, text []rune, fn func(*regexp2.Match)) bool {
	match, err := m.re.FindRunesMatch(text)

	for err == nil && match != nil {
		fn(match)

		match, err = m.re.FindNextMatch(match)
	}

	if err != nil {
		e.logger.Warn().Err(err).Str("pattern", m.name).Int("text_len", len(text)).Msg("matcher aborted, dropping result")

		return false
	}

	return true
}

// first returns the first match of m in text, or nil.
func (e *Extractor) first(m matcher, text []rune) *regexp2.Match {
	match, err := m.re.FindRunesMatch(text)
	if err != nil {
		e.logger.Warn().Err(err).Str("pattern", m.name).Msg("matcher aborted")

		return nil
	}

	return match
}

func (e *Extractor) matches(m matcher, text []rune) bool {
	return e.first(m, text) != nil
}

// group returns the numbered group when it took part in the match.
func group(m *regexp2.Match, n int) (*regexp2.Group, bool) {
	g := m.GroupByNumber(n)
	if g == nil || len(g.Captures) == 0 {
		return nil, false
	}

	return g, true
}

func groupEnd(g *regexp2.Group) int {
	return g.Index + g.Length
}

// dropURLOverlaps merges found with the URLs of text, resolves overlaps and
// keeps only the entities of the given kinds.
func (e *Extractor) dropURLOverlaps(text string, runes []rune, found []Entity, kinds ...Kind) []Entity {
	if len(found) == 0 {
		return found
	}

	urls := e.urls(text, runes)
	if len(urls) == 0 {
		return found
	}

	merged := make([]Entity, 0, len(found)+len(urls))
	merged = append(merged, found...)
	merged = append(merged, urls...)

	return filterKinds(RemoveOverlapping(merged), kinds...)
}
