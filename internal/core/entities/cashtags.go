package entities

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// validCashtag capture groups.
const (
	cashtagGroupDollar = 2
	cashtagGroupSymbol = 3
)

// ExtractCashtags returns the cashtags of text, dollar sign included.
func (e *Extractor) ExtractCashtags(text string) []string {
	return texts(e.ExtractCashtagsWithIndices(text))
}

// ExtractCashtagsWithIndices returns the $SYMBOL entities of text.
func (e *Extractor) ExtractCashtagsWithIndices(text string) []Entity {
	runes := []rune(text)

	tags := e.cashtags(text, runes)
	if !e.opts.CheckURLOverlap {
		return tags
	}

	return e.dropURLOverlaps(text, runes, tags, KindCashtag)
}

func (e *Extractor) cashtags(text string, runes []rune) []Entity {
	if !strings.Contains(text, "$") {
		return nil
	}

	var tags []Entity

	ok := e.scan(e.validCashtag, runes, func(m *regexp2.Match) {
		dollar := m.GroupByNumber(cashtagGroupDollar)
		symbol := m.GroupByNumber(cashtagGroupSymbol)
		stop := groupEnd(symbol)

		tags = append(tags, Entity{
			Kind:  KindCashtag,
			Text:  string(runes[dollar.Index:stop]),
			Start: dollar.Index,
			End:   stop,
			Tag:   symbol.String(),
		})
	})
	if !ok {
		return nil
	}

	return tags
}
