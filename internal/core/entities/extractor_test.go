package entities

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/tweet-entities/internal/core/regexen"
)

var (
	setOnce sync.Once
	set     *regexen.Set
	setErr  error
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()

	setOnce.Do(func() {
		set, setErr = regexen.Build(regexen.BuildOptions{})
	})

	require.NoError(t, setErr)

	return New(set, DefaultOptions(), nil)
}

type span struct {
	text       string
	start, end int
}

func spans(entities []Entity) []span {
	out := make([]span, 0, len(entities))
	for _, ent := range entities {
		out = append(out, span{text: ent.Text, start: ent.Start, end: ent.End})
	}

	return out
}

func TestExtractHashtagsWithIndices(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		text string
		want []span
	}{
		{
			name: "two hashtags",
			text: "Hello #world, this is #nice",
			want: []span{{"#world", 6, 12}, {"#nice", 22, 27}},
		},
		{
			name: "hashtag inside a URL",
			text: "check http://example.com/#frag",
			want: []span{},
		},
		{
			name: "digits only",
			text: "#12345",
			want: []span{},
		},
		{
			name: "no hash sign",
			text: "nothing to see",
			want: []span{},
		},
		{
			name: "cyrillic",
			text: "Привет #мир",
			want: []span{{"#мир", 7, 11}},
		},
		{
			name: "emoji before the tag",
			text: "\U0001F600 #go",
			want: []span{{"#go", 2, 5}},
		},
		{
			name: "followed by scheme separator",
			text: "#foo://bar",
			want: []span{},
		},
		{
			name: "fullwidth hash sign",
			text: "a ＃tag",
			want: []span{{"＃tag", 2, 6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spans(e.ExtractHashtagsWithIndices(tt.text)))
		})
	}
}

func TestExtractHashtags(t *testing.T) {
	e := newTestExtractor(t)

	assert.Equal(t, []string{"#world", "#nice"}, e.ExtractHashtags("Hello #world, this is #nice"))
	assert.Empty(t, e.ExtractHashtags(""))

	tags := e.ExtractHashtagsWithIndices("#go_lang rocks")
	require.Len(t, tags, 1)
	assert.Equal(t, "go_lang", tags[0].Tag)
	assert.Equal(t, KindHashtag, tags[0].Kind)
}

func TestExtractHashtags_WithoutURLOverlapCheck(t *testing.T) {
	e := newTestExtractor(t).WithOptions(Options{ExtractURLsWithoutProtocol: true})

	assert.Equal(t, []string{"#frag"}, e.ExtractHashtags("check http://example.com/#frag"))
}

func TestExtractURLsWithIndices(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		text string
		want []span
	}{
		{
			name: "bare domain",
			text: "visit example.com today",
			want: []span{{"example.com", 6, 17}},
		},
		{
			name: "with protocol and path",
			text: "go to https://example.com/path now",
			want: []span{{"https://example.com/path", 6, 30}},
		},
		{
			name: "t.co is truncated",
			text: "see https://t.co/abc123?x=1 now",
			want: []span{{"https://t.co/abc123", 4, 23}},
		},
		{
			name: "short ccTLD domain alone",
			text: "visit t.co today",
			want: []span{},
		},
		{
			name: "short ccTLD domain with path",
			text: "visit t.co/abc today",
			want: []span{{"t.co/abc", 6, 14}},
		},
		{
			name: "invalid preceding character",
			text: "path/example.com",
			want: []span{},
		},
		{
			name: "ascii domains split around non-ascii text",
			text: "abc.com日本example.org",
			want: []span{{"abc.com", 0, 7}, {"example.org", 9, 20}},
		},
		{
			name: "path and query reattach to the last ascii domain",
			text: "x abc.com日本example.org/p?q=1 y",
			want: []span{{"abc.com", 2, 9}, {"example.org/p?q=1", 11, 28}},
		},
		{
			name: "short ccTLD domain kept when a path follows the split",
			text: "abc.com日本t.co/x",
			want: []span{{"abc.com", 0, 7}, {"t.co/x", 9, 15}},
		},
		{
			name: "no dot",
			text: "nothing here",
			want: []span{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spans(e.ExtractURLsWithIndices(tt.text)))
		})
	}
}

func TestExtractURLs_Fields(t *testing.T) {
	e := newTestExtractor(t)

	urls := e.ExtractURLsWithIndices("go to https://example.com/path and example.org")
	require.Len(t, urls, 2)

	assert.True(t, urls[0].HasProtocol)
	assert.Equal(t, "example.com", urls[0].Domain)
	assert.False(t, urls[1].HasProtocol)
	assert.Equal(t, "example.org", urls[1].Domain)
	assert.Equal(t, KindURL, urls[1].Kind)
}

func TestExtractURLs_ProtocolRequired(t *testing.T) {
	e := newTestExtractor(t).WithOptions(Options{CheckURLOverlap: true})

	assert.Empty(t, e.ExtractURLs("visit example.com today"))
	assert.Equal(t, []string{"http://example.com"}, e.ExtractURLs("visit http://example.com today"))
	assert.False(t, e.Options().ExtractURLsWithoutProtocol)
}

func TestExtractMentionsOrListsWithIndices(t *testing.T) {
	e := newTestExtractor(t)

	found := e.ExtractMentionsOrListsWithIndices("hello @jack and @twitter/team")
	require.Len(t, found, 2)

	assert.Equal(t, span{"@jack", 6, 11}, spans(found)[0])
	assert.Equal(t, KindMention, found[0].Kind)
	assert.Equal(t, "jack", found[0].ScreenName)
	assert.Empty(t, found[0].ListSlug)

	assert.Equal(t, span{"@twitter/team", 16, 29}, spans(found)[1])
	assert.Equal(t, KindList, found[1].Kind)
	assert.Equal(t, "twitter", found[1].ScreenName)
	assert.Equal(t, "/team", found[1].ListSlug)
}

func TestExtractMentions(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single", "hi @jack", []string{"jack"}},
		{"lists skipped", "hi @jack and @twitter/team", []string{"jack"}},
		{"retweet prefix", "RT:@jack nice", []string{"jack"}},
		{"email is not a mention", "mail foo@bar.com", []string{}},
		{"no at sign", "plain text", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ExtractMentions(tt.text))
		})
	}
}

func TestExtractReplyScreenName(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"@jack hi", "jack", true},
		{"  @jack hi", "jack", true},
		{"hi @jack", "", false},
		{"@jack@x", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := e.ExtractReplyScreenName(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCashtagsWithIndices(t *testing.T) {
	e := newTestExtractor(t)

	tags := e.ExtractCashtagsWithIndices("buy $TWTR and $BRK.A")
	assert.Equal(t, []span{{"$TWTR", 4, 9}, {"$BRK.A", 14, 20}}, spans(tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "TWTR", tags[0].Tag)
	assert.Equal(t, KindCashtag, tags[0].Kind)

	assert.Empty(t, e.ExtractCashtags("costs $1234"))
	assert.Empty(t, e.ExtractCashtags("no dollar"))
	assert.Equal(t, []string{"$AB"}, e.ExtractCashtags("$AB"))
}

func TestExtractEntitiesWithIndices(t *testing.T) {
	e := newTestExtractor(t)

	text := "@jack see https://example.com/#x #tag $AB"
	got := e.ExtractEntitiesWithIndices(text)

	assert.Equal(t, []span{
		{"@jack", 0, 5},
		{"https://example.com/#x", 10, 32},
		{"#tag", 33, 37},
		{"$AB", 38, 41},
	}, spans(got))

	kinds := make([]Kind, 0, len(got))
	for _, ent := range got {
		kinds = append(kinds, ent.Kind)
	}

	assert.Equal(t, []Kind{KindMention, KindURL, KindHashtag, KindCashtag}, kinds)

	assert.Equal(t, []span{{"#tag", 33, 37}}, spans(e.ExtractKinds(text, KindHashtag)))
	assert.Len(t, e.ExtractKinds(text), 4)
	assert.Empty(t, e.ExtractEntitiesWithIndices(""))
}

var propertyTexts = []string{
	"Hello #world, this is #nice",
	"check http://example.com/#frag and #real",
	"Привет #мир и @друг @jack/list",
	"\U0001F600\U0001F600 #go https://go.dev/doc?x=1#y $GO",
	"t.co/abc example.co.jp www.example.com/a#b#c",
	"RT @a: #b #c#d ##e $f $g.h",
	"#12345 #_ #a1 foo#bar",
}

func TestExtract_PositionsMatchText(t *testing.T) {
	e := newTestExtractor(t)

	for _, text := range propertyTexts {
		runes := []rune(text)

		for _, ent := range e.ExtractEntitiesWithIndices(text) {
			require.GreaterOrEqual(t, ent.Start, 0, text)
			require.Less(t, ent.Start, ent.End, text)
			require.LessOrEqual(t, ent.End, len(runes), text)
			assert.Equal(t, string(runes[ent.Start:ent.End]), ent.Text, text)
		}
	}
}

func TestExtract_MergedSpansAreDisjoint(t *testing.T) {
	e := newTestExtractor(t)

	for _, text := range propertyTexts {
		got := e.ExtractEntitiesWithIndices(text)

		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].End, got[i].Start, text)
		}

		for _, tag := range e.ExtractHashtagsWithIndices(text) {
			for _, url := range e.ExtractURLsWithIndices(text) {
				if url.Start <= tag.Start {
					assert.False(t, tag.Overlaps(url), text)
				}
			}
		}
	}
}

func TestExtract_Idempotent(t *testing.T) {
	e := newTestExtractor(t)

	for _, text := range propertyTexts {
		assert.Equal(t, e.ExtractHashtagsWithIndices(text), e.ExtractHashtagsWithIndices(text), text)
		assert.Equal(t, e.ExtractEntitiesWithIndices(text), e.ExtractEntitiesWithIndices(text), text)
	}
}

func TestHasRTLChars(t *testing.T) {
	e := newTestExtractor(t)

	assert.True(t, e.HasRTLChars("hello שלום"))
	assert.True(t, e.HasRTLChars("مرحبا"))
	assert.False(t, e.HasRTLChars("hello"))
	assert.False(t, e.HasRTLChars(""))
}

func TestExtractMentions_InsideURL(t *testing.T) {
	e := newTestExtractor(t)

	assert.Empty(t, e.ExtractMentions("see https://example.com/@user"))
	assert.Equal(t, []string{"user"}, e.WithOptions(Options{}).ExtractMentions("see https://example.com/@user"))
}
