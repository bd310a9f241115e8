package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveOverlapping(t *testing.T) {
	tests := []struct {
		name string
		in   []Entity
		want []Entity
	}{
		{
			name: "drops the later of two overlapping spans",
			in:   []Entity{{Start: 0, End: 5}, {Start: 3, End: 8}, {Start: 8, End: 10}},
			want: []Entity{{Start: 0, End: 5}, {Start: 8, End: 10}},
		},
		{
			name: "sorts by start",
			in:   []Entity{{Start: 8, End: 10}, {Start: 0, End: 5}},
			want: []Entity{{Start: 0, End: 5}, {Start: 8, End: 10}},
		},
		{
			name: "equal starts keep original order",
			in:   []Entity{{Kind: KindURL, Start: 2, End: 4}, {Kind: KindHashtag, Start: 2, End: 6}},
			want: []Entity{{Kind: KindURL, Start: 2, End: 4}},
		},
		{
			name: "adjacent spans are kept",
			in:   []Entity{{Start: 0, End: 2}, {Start: 2, End: 4}},
			want: []Entity{{Start: 0, End: 2}, {Start: 2, End: 4}},
		},
		{
			name: "overlap is measured against the last kept entity",
			in:   []Entity{{Start: 0, End: 10}, {Start: 2, End: 3}, {Start: 5, End: 12}, {Start: 11, End: 13}},
			want: []Entity{{Start: 0, End: 10}, {Start: 11, End: 13}},
		},
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveOverlapping(tt.in))
		})
	}
}

func TestEntity_Overlaps(t *testing.T) {
	a := Entity{Start: 0, End: 5}

	assert.True(t, a.Overlaps(Entity{Start: 4, End: 6}))
	assert.False(t, a.Overlaps(Entity{Start: 5, End: 6}))
	assert.Equal(t, [2]int{0, 5}, a.Indices())
}

func TestUTF16Offsets(t *testing.T) {
	text := "\U0001F600 #go é #x"
	ents := []Entity{{Start: 2, End: 5}, {Start: 8, End: 10}}

	assert.Equal(t, [][2]int{{3, 6}, {9, 11}}, UTF16Offsets(text, ents))
	assert.Equal(t, [][2]int{{0, 1}}, UTF16Offsets("ab", []Entity{{Start: 0, End: 1}}))
}
