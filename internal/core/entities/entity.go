package entities

import (
	"cmp"
	"slices"
)

type Kind string

const (
	KindURL     Kind = "url"
	KindHashtag Kind = "hashtag"
	KindMention Kind = "mention"
	KindList    Kind = "list"
	KindCashtag Kind = "cashtag"
)

// Entity is a span of the source text. Start and End are code point offsets,
// End exclusive, and Text is exactly the code points in [Start, End).
type Entity struct {
	Kind  Kind
	Text  string
	Start int
	End   int

	// URL-specific
	HasProtocol bool
	Domain      string

	// Mention and list specific. ListSlug keeps its leading slash.
	ScreenName string
	ListSlug   string

	// Hashtag and cashtag specific: the symbol without its sign.
	Tag string
}

// Indices returns the [start, end) pair.
func (e Entity) Indices() [2]int {
	return [2]int{e.Start, e.End}
}

// Overlaps reports whether the spans of e and o intersect.
func (e Entity) Overlaps(o Entity) bool {
	return e.Start < o.End && o.Start < e.End
}

// RemoveOverlapping sorts entities by start position, keeping the original
// order on ties, and drops every entity that starts before the end of the
// last kept one. It works in place and returns the shortened slice.
func RemoveOverlapping(entities []Entity) []Entity {
	if len(entities) < 2 {
		return entities
	}

	slices.SortStableFunc(entities, func(a, b Entity) int {
		return cmp.Compare(a.Start, b.Start)
	})

	kept := entities[:1]

	for _, ent := range entities[1:] {
		if ent.Start < kept[len(kept)-1].End {
			continue
		}

		kept = append(kept, ent)
	}

	return kept
}

func filterKinds(entities []Entity, kinds ...Kind) []Entity {
	var out []Entity

	for _, ent := range entities {
		if slices.Contains(kinds, ent.Kind) {
			out = append(out, ent)
		}
	}

	return out
}

// UTF16Offsets converts the code point indices of entities into UTF-16 code
// unit indices of text. Clients that count like JavaScript or Telegram need
// these: characters outside the BMP take two units.
func UTF16Offsets(text string, entities []Entity) [][2]int {
	runes := []rune(text)

	prefix := make([]int, len(runes)+1)

	for i, r := range runes {
		units := 1
		if r > 0xFFFF {
			units = 2 // surrogate pair
		}

		prefix[i+1] = prefix[i] + units
	}

	clamp := func(i int) int {
		return max(0, min(i, len(runes)))
	}

	out := make([][2]int, len(entities))
	for i, ent := range entities {
		out[i] = [2]int{prefix[clamp(ent.Start)], prefix[clamp(ent.End)]}
	}

	return out
}
