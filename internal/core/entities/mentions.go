package entities

import (
	"github.com/dlclark/regexp2"
)

// validMentionOrList capture groups.
const (
	mentionGroupAt   = 2
	mentionGroupName = 3
	mentionGroupList = 4
)

// ExtractMentions returns the screen names mentioned in text, without the
// at sign. Lists are skipped.
func (e *Extractor) ExtractMentions(text string) []string {
	mentions := e.ExtractMentionsWithIndices(text)

	out := make([]string, 0, len(mentions))
	for _, m := range mentions {
		out = append(out, m.ScreenName)
	}

	return out
}

// ExtractMentionsWithIndices returns the mention entities of text. Lists are
// skipped.
func (e *Extractor) ExtractMentionsWithIndices(text string) []Entity {
	return filterKinds(e.ExtractMentionsOrListsWithIndices(text), KindMention)
}

// ExtractMentionsOrListsWithIndices returns @user mentions and @user/list
// references of text.
func (e *Extractor) ExtractMentionsOrListsWithIndices(text string) []Entity {
	runes := []rune(text)

	found := e.mentionsOrLists(text, runes)
	if !e.opts.CheckURLOverlap {
		return found
	}

	return e.dropURLOverlaps(text, runes, found, KindMention, KindList)
}

func (e *Extractor) mentionsOrLists(text string, runes []rune) []Entity {
	if text == "" || !e.matches(e.atSigns, runes) {
		return nil
	}

	var found []Entity

	ok := e.scan(e.validMentionOrList, runes, func(m *regexp2.Match) {
		stop := m.Index + m.Length
		if e.matches(e.endMentionMatch, runes[stop:]) {
			return
		}

		at := m.GroupByNumber(mentionGroupAt)
		ent := Entity{
			Kind:       KindMention,
			Text:       string(runes[at.Index:stop]),
			Start:      at.Index,
			End:        stop,
			ScreenName: m.GroupByNumber(mentionGroupName).String(),
		}

		if list, ok := group(m, mentionGroupList); ok {
			ent.Kind = KindList
			ent.ListSlug = list.String()
		}

		found = append(found, ent)
	})
	if !ok {
		return nil
	}

	return found
}

// ExtractReplyScreenName returns the screen name text replies to: an @user
// at the very start, after optional whitespace.
func (e *Extractor) ExtractReplyScreenName(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	runes := []rune(text)

	m := e.first(e.validReply, runes)
	if m == nil {
		return "", false
	}

	if e.matches(e.endMentionMatch, runes[m.Index+m.Length:]) {
		return "", false
	}

	return m.GroupByNumber(1).String(), true
}
