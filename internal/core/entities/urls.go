package entities

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// extractURL capture groups.
const (
	urlGroupPreceding = 2
	urlGroupURL       = 3
	urlGroupProtocol  = 4
	urlGroupDomain    = 5
	urlGroupPath      = 7
	urlGroupQuery     = 8
)

// ExtractURLs returns the URLs of text in order of appearance.
func (e *Extractor) ExtractURLs(text string) []string {
	return texts(e.ExtractURLsWithIndices(text))
}

// ExtractURLsWithIndices returns the URL entities of text in order of appearance.
func (e *Extractor) ExtractURLsWithIndices(text string) []Entity {
	return e.urls(text, nil)
}

// urls extracts URLs; runes may be nil when the caller has not decoded text yet.
func (e *Extractor) urls(text string, runes []rune) []Entity {
	if text == "" {
		return nil
	}

	// Cheap rejections before running the full grammar.
	if e.opts.ExtractURLsWithoutProtocol {
		if !strings.Contains(text, ".") {
			return nil
		}
	} else if !strings.Contains(text, ":") {
		return nil
	}

	if runes == nil {
		runes = []rune(text)
	}

	var urls []Entity

	ok := e.scan(e.extractURL, runes, func(m *regexp2.Match) {
		urls = e.appendURL(urls, runes, m)
	})
	if !ok {
		return nil
	}

	return urls
}

func (e *Extractor) appendURL(urls []Entity, runes []rune, m *regexp2.Match) []Entity {
	url := m.GroupByNumber(urlGroupURL)
	domain := m.GroupByNumber(urlGroupDomain)
	start, stop := url.Index, groupEnd(url)

	if _, ok := group(m, urlGroupProtocol); ok {
		// t.co links carry no further path segments.
		if tco := e.first(e.validTcoURL, runes[start:stop]); tco != nil {
			stop = start + tco.Length
		}

		return append(urls, newURL(runes, start, stop, true, domain.String()))
	}

	if !e.opts.ExtractURLsWithoutProtocol {
		return urls
	}

	if before := m.GroupByNumber(urlGroupPreceding); e.matches(e.invalidPrecedingNoProtocol, before.Runes()) {
		return urls
	}

	return e.appendBareDomains(urls, runes, m, domain, stop)
}

// appendBareDomains splits a protocol-less domain into its ASCII-only
// domains. Bare name+ccTLD domains such as "t.co" are only kept when a path
// or query follows them; the last domain found absorbs that path or query.
func (e *Extractor) appendBareDomains(urls []Entity, runes []rune, m *regexp2.Match, domain *regexp2.Group, stop int) []Entity {
	var (
		last        Entity
		lastIndex   = -1
		lastInvalid bool
		found       bool
	)

	domainRunes := runes[domain.Index:groupEnd(domain)]

	e.scan(e.validASCIIDomain, domainRunes, func(dm *regexp2.Match) {
		s := domain.Index + dm.Index
		last = newURL(runes, s, s+dm.Length, false, dm.String())
		found = true

		lastInvalid = e.matches(e.invalidShortDomain, dm.Runes())
		if lastInvalid {
			lastIndex = -1

			return
		}

		urls = append(urls, last)
		lastIndex = len(urls) - 1
	})

	if !found {
		return urls
	}

	_, hasPath := group(m, urlGroupPath)
	_, hasQuery := group(m, urlGroupQuery)

	if !hasPath && !hasQuery {
		return urls
	}

	extended := newURL(runes, last.Start, stop, false, last.Domain)

	if lastInvalid {
		return append(urls, extended)
	}

	urls[lastIndex] = extended

	return urls
}

func newURL(runes []rune, start, stop int, hasProtocol bool, domain string) Entity {
	return Entity{
		Kind:        KindURL,
		Text:        string(runes[start:stop]),
		Start:       start,
		End:         stop,
		HasProtocol: hasProtocol,
		Domain:      domain,
	}
}
