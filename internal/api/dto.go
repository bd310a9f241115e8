package api

import (
	"fmt"
	"strings"

	"github.com/lueurxax/tweet-entities/internal/core/entities"
	errs "github.com/lueurxax/tweet-entities/internal/core/errors"
)

type EntitiesRequest struct {
	Text                       string   `json:"text"`
	Kinds                      []string `json:"kinds,omitempty"`
	ExtractURLsWithoutProtocol *bool    `json:"extract_urls_without_protocol,omitempty"`
	CheckURLOverlap            *bool    `json:"check_url_overlap,omitempty"`
}

type EntitiesResponse struct {
	Text     string   `json:"text"`
	HasRTL   bool     `json:"has_rtl"`
	Entities []Entity `json:"entities"`
}

// Entity is the wire form of entities.Entity. Indices count code points,
// UTF16Indices count UTF-16 code units.
type Entity struct {
	Kind         string `json:"kind"`
	Text         string `json:"text"`
	Indices      [2]int `json:"indices"`
	UTF16Indices [2]int `json:"utf16_indices"`
	HasProtocol  bool   `json:"has_protocol,omitempty"`
	Domain       string `json:"domain,omitempty"`
	ScreenName   string `json:"screen_name,omitempty"`
	ListSlug     string `json:"list_slug,omitempty"`
	Tag          string `json:"tag,omitempty"`
}

type ValidateRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type ValidateResponse struct {
	Valid bool `json:"valid"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ToEntities converts extracted entities of text into their wire form.
func ToEntities(text string, found []entities.Entity) []Entity {
	utf16 := entities.UTF16Offsets(text, found)

	out := make([]Entity, len(found))
	for i, ent := range found {
		out[i] = Entity{
			Kind:         string(ent.Kind),
			Text:         ent.Text,
			Indices:      ent.Indices(),
			UTF16Indices: utf16[i],
			HasProtocol:  ent.HasProtocol,
			Domain:       ent.Domain,
			ScreenName:   ent.ScreenName,
			ListSlug:     ent.ListSlug,
			Tag:          ent.Tag,
		}
	}

	return out
}

// ParseKinds maps kind names such as "url" or "Hashtag" onto entity kinds.
func ParseKinds(names []string) ([]entities.Kind, error) {
	kinds := make([]entities.Kind, 0, len(names))

	for _, name := range names {
		switch kind := entities.Kind(strings.ToLower(strings.TrimSpace(name))); kind {
		case entities.KindURL, entities.KindHashtag, entities.KindMention, entities.KindList, entities.KindCashtag:
			kinds = append(kinds, kind)
		case "":
		default:
			return nil, fmt.Errorf("%w: unknown entity kind %q", errs.ErrInvalidInput, name)
		}
	}

	return kinds, nil
}
