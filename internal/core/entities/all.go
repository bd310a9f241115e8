package entities

// ExtractEntitiesWithIndices returns every URL, mention, list, hashtag and
// cashtag of text ordered by start. Overlaps resolve in favour of the entity
// that starts first; on equal starts URLs win, then mentions, hashtags and
// cashtags.
func (e *Extractor) ExtractEntitiesWithIndices(text string) []Entity {
	if text == "" {
		return nil
	}

	runes := []rune(text)

	var all []Entity

	all = append(all, e.urls(text, runes)...)
	all = append(all, e.mentionsOrLists(text, runes)...)
	all = append(all, e.hashtags(text, runes)...)
	all = append(all, e.cashtags(text, runes)...)

	if len(all) == 0 {
		return nil
	}

	return RemoveOverlapping(all)
}

// ExtractKinds is ExtractEntitiesWithIndices restricted to kinds. No kinds
// means all of them.
func (e *Extractor) ExtractKinds(text string, kinds ...Kind) []Entity {
	all := e.ExtractEntitiesWithIndices(text)
	if len(kinds) == 0 {
		return all
	}

	return filterKinds(all, kinds...)
}
