package charclass

// Span is an inclusive code point range given as hex literals.
// Start equal to End denotes a single code point.
type Span struct {
	Start string
	End   string
}

func single(hex string) Span {
	return Span{Start: hex, End: hex}
}

// Cyrillic letters.
var cyrillic = []Span{
	{"0400", "04ff"}, // Cyrillic
	{"0500", "0527"}, // Cyrillic Supplement
	{"2de0", "2dff"}, // Cyrillic Extended A
	{"a640", "a69f"}, // Cyrillic Extended B
}

var hebrew = []Span{
	{"0591", "05bf"},
	{"05c1", "05c2"},
	{"05c4", "05c5"},
	single("05c7"),
	{"05d0", "05ea"},
	{"05f0", "05f4"},
	{"fb12", "fb28"}, // presentation forms
	{"fb2a", "fb36"},
	{"fb38", "fb3c"},
	single("fb3e"),
	{"fb40", "fb41"},
	{"fb43", "fb44"},
	{"fb46", "fb4f"},
}

var arabic = []Span{
	{"0610", "061a"},
	{"0620", "065f"},
	{"066e", "06d3"},
	{"06d5", "06dc"},
	{"06de", "06e8"},
	{"06ea", "06ef"},
	{"06fa", "06fc"},
	single("06ff"),
	{"0750", "077f"}, // Arabic Supplement
	single("08a0"),   // Arabic Extended A
	{"08a2", "08ac"},
	{"08e4", "08fe"},
	{"fb50", "fbb1"}, // presentation forms A
	{"fbd3", "fd3d"},
	{"fd50", "fd8f"},
	{"fd92", "fdc7"},
	{"fdf0", "fdfb"},
	{"fe70", "fe74"}, // presentation forms B
	{"fe76", "fefc"},
	single("200c"), // zero-width non-joiner
}

var thai = []Span{
	{"0e01", "0e3a"},
	{"0e40", "0e4e"},
}

var hangul = []Span{
	{"1100", "11ff"}, // Jamo
	{"3130", "3185"}, // compatibility Jamo
	{"A960", "A97F"}, // Jamo Extended-A
	{"AC00", "D7AF"}, // syllables
	{"D7B0", "D7FF"}, // Jamo Extended-B
	{"FFA1", "FFDC"}, // half-width
}

// Japanese and Chinese. The supplementary-plane CJK extensions (B, C, D and
// the compatibility supplement) are left out of the hashtag alphabet.
var cjk = []Span{
	{"30A1", "30FA"}, // Katakana, full-width
	{"30FC", "30FE"}, // Katakana chouon and iteration marks
	{"FF66", "FF9F"}, // Katakana, half-width
	single("FF70"),   // half-width chouon
	{"FF10", "FF19"}, // full-width Latin digits
	{"FF21", "FF3A"}, // full-width Latin upper case
	{"FF41", "FF5A"}, // full-width Latin lower case
	{"3041", "3096"}, // Hiragana
	{"3099", "309E"}, // Hiragana voicing and iteration marks
	{"3400", "4DBF"}, // CJK Extension A
	{"4E00", "9FFF"}, // CJK Unified
	single("3003"),   // iteration marks
	single("3005"),
	single("303B"),
}

// Latin accented letters. U+00D7 is skipped, it is a multiplication sign.
var latinAccents = []Span{
	{"00c0", "00d6"},
	{"00d8", "00f6"},
	{"00f8", "00ff"},
	{"0100", "024f"}, // Latin Extended A and B
	{"0253", "0254"}, // IPA extensions
	{"0256", "0257"},
	single("0259"),
	single("025b"),
	single("0263"),
	single("0268"),
	single("026f"),
	single("0272"),
	single("0289"),
	single("028b"),
	single("02bb"),   // okina
	{"0300", "036f"}, // combining diacritics
	{"1e00", "1eff"}, // Latin Extended Additional
}

// Code points with the White_Space property.
var unicodeSpaces = []Span{
	single("0020"),
	single("0085"),
	single("00A0"),
	single("1680"),
	single("180E"),
	single("2028"),
	single("2029"),
	single("202F"),
	single("205F"),
	single("3000"),
	{"0009", "000D"},
	{"2000", "200A"},
}

// Byte order marks, noncharacters and directional overrides.
var invalidChars = []Span{
	single("FFFE"),
	single("FEFF"),
	single("FFFF"),
	{"202A", "202E"},
}

// Right-to-left scripts, one class per alternative.
var rtlBlocks = []Span{
	{"0600", "06FF"},
	{"0750", "077F"},
	{"0590", "05FF"},
	{"FE70", "FEFF"},
}

var nonBMP = []Span{
	{"10000", "10FFFF"},
}

// Build concatenates the spans of each table into one class.
func Build(tables ...[]Span) (*Class, error) {
	c := &Class{}

	for _, table := range tables {
		for _, s := range table {
			if err := c.AppendRange(s.Start, s.End); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

// NonLatinHashtagChars covers the scripts accepted in hashtags besides Latin.
func NonLatinHashtagChars() (*Class, error) {
	return Build(cyrillic, hebrew, arabic, thai, hangul, cjk)
}

// LatinAccentChars covers accented Latin letters and combining diacritics.
func LatinAccentChars() (*Class, error) {
	return Build(latinAccents)
}

// UnicodeSpaces covers every White_Space code point.
func UnicodeSpaces() (*Class, error) {
	return Build(unicodeSpaces)
}

// InvalidChars covers the code points that never appear inside an entity.
func InvalidChars() (*Class, error) {
	return Build(invalidChars)
}

// RTLBlocks returns one class per right-to-left block.
func RTLBlocks() ([]*Class, error) {
	classes := make([]*Class, 0, len(rtlBlocks))

	for _, s := range rtlBlocks {
		c, err := Build([]Span{s})
		if err != nil {
			return nil, err
		}

		classes = append(classes, c)
	}

	return classes, nil
}

// NonBMPChars covers the supplementary planes.
func NonBMPChars() (*Class, error) {
	return Build(nonBMP)
}
