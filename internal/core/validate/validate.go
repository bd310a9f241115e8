// Package validate checks whether a whole string is a well-formed URL,
// username, list or hashtag.
package validate

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/lueurxax/tweet-entities/internal/core/entities"
	errs "github.com/lueurxax/tweet-entities/internal/core/errors"
	"github.com/lueurxax/tweet-entities/internal/core/regexen"
)

// Kinds accepted by Validate.
const (
	KindURL      = "url"
	KindUsername = "username"
	KindList     = "list"
	KindHashtag  = "hashtag"
)

// validateUrlUnencoded capture groups.
const (
	partScheme    = 1
	partAuthority = 2
	partPath      = 3
	partQuery     = 4
	partFragment  = 5
)

type Validator struct {
	extractor *entities.Extractor

	unencoded        *regexp2.Regexp
	scheme           *regexp2.Regexp
	authority        *regexp2.Regexp
	unicodeAuthority *regexp2.Regexp
	path             *regexp2.Regexp
	query            *regexp2.Regexp
	fragment         *regexp2.Regexp
}

// New builds a validator. Username, list and hashtag checks delegate to
// extractor, so its options apply.
func New(set *regexen.Set, extractor *entities.Extractor) (*Validator, error) {
	v := &Validator{
		extractor: extractor,
		unencoded: set.MustRegexp(regexen.ValidateURLUnencoded),
	}

	anchored := []struct {
		name string
		dst  **regexp2.Regexp
	}{
		{regexen.ValidateURLScheme, &v.scheme},
		{regexen.ValidateURLAuthority, &v.authority},
		{regexen.ValidateURLUnicodeAuthority, &v.unicodeAuthority},
		{regexen.ValidateURLPath, &v.path},
		{regexen.ValidateURLQuery, &v.query},
		{regexen.ValidateURLFragment, &v.fragment},
	}

	for _, a := range anchored {
		re, err := set.Anchored(a.name)
		if err != nil {
			return nil, fmt.Errorf("anchoring %s: %w", a.name, err)
		}

		*a.dst = re
	}

	return v, nil
}

// Validate dispatches on kind. Unknown kinds return ErrInvalidInput.
func (v *Validator) Validate(kind, value string) (bool, error) {
	switch kind {
	case KindURL:
		return v.IsValidURL(value, true, true), nil
	case KindUsername:
		return v.IsValidUsername(value), nil
	case KindList:
		return v.IsValidList(value), nil
	case KindHashtag:
		return v.IsValidHashtag(value), nil
	default:
		return false, fmt.Errorf("%w: unknown kind %q", errs.ErrInvalidInput, kind)
	}
}

// IsValidURL checks url against RFC 3986. With unicodeDomains the host may
// contain unencoded non-ASCII labels; with requireProtocol the scheme must be
// http or https.
func (v *Validator) IsValidURL(url string, unicodeDomains, requireProtocol bool) bool {
	if url == "" {
		return false
	}

	m, err := v.unencoded.FindStringMatch(url)
	if err != nil || m == nil || m.Index != 0 || m.Length != len([]rune(url)) {
		return false
	}

	scheme := part(m, partScheme)
	authority := part(m, partAuthority)

	if requireProtocol {
		if !fullMatch(v.scheme, scheme) {
			return false
		}

		if !strings.EqualFold(scheme, "http") && !strings.EqualFold(scheme, "https") {
			return false
		}
	}

	if !optionalMatch(v.path, part(m, partPath)) ||
		!optionalMatch(v.query, part(m, partQuery)) ||
		!optionalMatch(v.fragment, part(m, partFragment)) {
		return false
	}

	if unicodeDomains {
		return fullMatch(v.unicodeAuthority, authority)
	}

	return fullMatch(v.authority, authority)
}

// IsValidUsername reports whether s is a single @screen_name.
func (v *Validator) IsValidUsername(s string) bool {
	if s == "" {
		return false
	}

	mentions := v.extractor.ExtractMentions(s)

	return len(mentions) == 1 && "@"+mentions[0] == s
}

// IsValidList reports whether s is exactly @screen_name/list_slug.
func (v *Validator) IsValidList(s string) bool {
	if s == "" {
		return false
	}

	found := v.extractor.ExtractMentionsOrListsWithIndices(s)
	if len(found) != 1 {
		return false
	}

	list := found[0]

	return list.Kind == entities.KindList && list.Start == 0 && list.Text == s
}

// IsValidHashtag reports whether s is a single hashtag, hash sign included.
func (v *Validator) IsValidHashtag(s string) bool {
	if s == "" {
		return false
	}

	tags := v.extractor.ExtractHashtags(s)

	return len(tags) == 1 && tags[0] == s
}

func part(m *regexp2.Match, n int) string {
	g := m.GroupByNumber(n)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}

	return g.String()
}

// fullMatch reports whether all of s matches the anchored re.
func fullMatch(re *regexp2.Regexp, s string) bool {
	if s == "" {
		return false
	}

	ok, err := re.MatchString(s)

	return err == nil && ok
}

func optionalMatch(re *regexp2.Regexp, s string) bool {
	return s == "" || fullMatch(re, s)
}
