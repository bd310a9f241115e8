package entities

import (
	"github.com/dlclark/regexp2"
)

// validHashtag capture groups.
const (
	hashtagGroupSign = 2
	hashtagGroupTag  = 3
)

// ExtractHashtags returns the hashtags of text, hash sign included.
func (e *Extractor) ExtractHashtags(text string) []string {
	return texts(e.ExtractHashtagsWithIndices(text))
}

// ExtractHashtagsWithIndices returns the hashtag entities of text. With
// CheckURLOverlap set, hashtags that are part of a URL are dropped.
func (e *Extractor) ExtractHashtagsWithIndices(text string) []Entity {
	runes := []rune(text)

	tags := e.hashtags(text, runes)
	if !e.opts.CheckURLOverlap {
		return tags
	}

	return e.dropURLOverlaps(text, runes, tags, KindHashtag)
}

func (e *Extractor) hashtags(text string, runes []rune) []Entity {
	if text == "" || !e.matches(e.hashSigns, runes) {
		return nil
	}

	var tags []Entity

	ok := e.scan(e.validHashtag, runes, func(m *regexp2.Match) {
		sign := m.GroupByNumber(hashtagGroupSign)
		tag := m.GroupByNumber(hashtagGroupTag)
		stop := groupEnd(tag)

		// "#foo#bar" and "#foo://" are not hashtags.
		if e.matches(e.endHashtagMatch, runes[stop:]) {
			return
		}

		tags = append(tags, Entity{
			Kind:  KindHashtag,
			Text:  string(runes[sign.Index:stop]),
			Start: sign.Index,
			End:   stop,
			Tag:   tag.String(),
		})
	})
	if !ok {
		return nil
	}

	return tags
}

func texts(entities []Entity) []string {
	out := make([]string, 0, len(entities))
	for _, ent := range entities {
		out = append(out, ent.Text)
	}

	return out
}
