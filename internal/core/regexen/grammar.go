package regexen

import (
	"strings"

	"github.com/lueurxax/tweet-entities/internal/core/charclass"
)

// Fragment names used by the extraction engine and the validators.
const (
	SpacesGroup       = "spacesGroup"
	Spaces            = "spaces"
	InvalidCharsGroup = "invalidCharsGroup"
	Punct             = "punct"
	RTLChars          = "rtlChars"
	NonBMPChars       = "nonBMPChars"

	NonLatinHashtagChars = "nonLatinHashtagChars"
	LatinAccentChars     = "latinAccentChars"
	HashSigns            = "hashSigns"
	HashtagAlpha         = "hashtagAlpha"
	HashtagAlphaNumeric  = "hashtagAlphaNumeric"
	EndHashtagMatch      = "endHashtagMatch"
	HashtagBoundary      = "hashtagBoundary"
	ValidHashtag         = "validHashtag"

	ValidMentionPrecedingChars = "validMentionPrecedingChars"
	AtSigns                    = "atSigns"
	ValidMentionOrList         = "validMentionOrList"
	ValidReply                 = "validReply"
	EndMentionMatch            = "endMentionMatch"

	ValidURLPrecedingChars                  = "validUrlPrecedingChars"
	InvalidURLWithoutProtocolPrecedingChars = "invalidUrlWithoutProtocolPrecedingChars"
	InvalidDomainChars                      = "invalidDomainChars"
	ValidDomainChars                        = "validDomainChars"
	ValidSubdomain                          = "validSubdomain"
	ValidDomainName                         = "validDomainName"
	ValidGTLD                               = "validGTLD"
	ValidCCTLD                              = "validCCTLD"
	ValidPunycode                           = "validPunycode"
	ValidDomain                             = "validDomain"
	ValidASCIIDomain                        = "validAsciiDomain"
	InvalidShortDomain                      = "invalidShortDomain"
	ValidPortNumber                         = "validPortNumber"
	ValidGeneralURLPathChars                = "validGeneralUrlPathChars"
	ValidURLBalancedParens                  = "validUrlBalancedParens"
	ValidURLPathEndingChars                 = "validUrlPathEndingChars"
	ValidURLPath                            = "validUrlPath"
	ValidURLQueryChars                      = "validUrlQueryChars"
	ValidURLQueryEndingChars                = "validUrlQueryEndingChars"
	ExtractURL                              = "extractUrl"
	ValidTcoURL                             = "validTcoUrl"
	URLHasProtocol                          = "urlHasProtocol"
	URLHasHTTPS                             = "urlHasHttps"

	Cashtag      = "cashtag"
	ValidCashtag = "validCashtag"

	ValidateURLUnreserved              = "validateUrlUnreserved"
	ValidateURLPctEncoded              = "validateUrlPctEncoded"
	ValidateURLSubDelims               = "validateUrlSubDelims"
	ValidateURLPchar                   = "validateUrlPchar"
	ValidateURLScheme                  = "validateUrlScheme"
	ValidateURLUserinfo                = "validateUrlUserinfo"
	ValidateURLDecOctet                = "validateUrlDecOctet"
	ValidateURLIPv4                    = "validateUrlIpv4"
	ValidateURLIPv6                    = "validateUrlIpv6"
	ValidateURLIP                      = "validateUrlIp"
	ValidateURLSubDomainSegment        = "validateUrlSubDomainSegment"
	ValidateURLDomainSegment           = "validateUrlDomainSegment"
	ValidateURLDomainTLD               = "validateUrlDomainTld"
	ValidateURLDomain                  = "validateUrlDomain"
	ValidateURLHost                    = "validateUrlHost"
	ValidateURLUnicodeSubDomainSegment = "validateUrlUnicodeSubDomainSegment"
	ValidateURLUnicodeDomainSegment    = "validateUrlUnicodeDomainSegment"
	ValidateURLUnicodeDomainTLD        = "validateUrlUnicodeDomainTld"
	ValidateURLUnicodeDomain           = "validateUrlUnicodeDomain"
	ValidateURLUnicodeHost             = "validateUrlUnicodeHost"
	ValidateURLPort                    = "validateUrlPort"
	ValidateURLUnicodeAuthority        = "validateUrlUnicodeAuthority"
	ValidateURLAuthority               = "validateUrlAuthority"
	ValidateURLPath                    = "validateUrlPath"
	ValidateURLQuery                   = "validateUrlQuery"
	ValidateURLFragment                = "validateUrlFragment"
	ValidateURLUnencoded               = "validateUrlUnencoded"
)

// EntryPoints are the fragments compiled into matchers by Build. The rest
// only exist to be embedded.
var EntryPoints = []string{
	RTLChars,
	HashSigns,
	EndHashtagMatch,
	ValidHashtag,
	AtSigns,
	ValidMentionOrList,
	ValidReply,
	EndMentionMatch,
	InvalidURLWithoutProtocolPrecedingChars,
	ValidASCIIDomain,
	InvalidShortDomain,
	ExtractURL,
	ValidTcoURL,
	URLHasProtocol,
	URLHasHTTPS,
	ValidCashtag,
	ValidateURLScheme,
	ValidateURLAuthority,
	ValidateURLUnicodeAuthority,
	ValidateURLPath,
	ValidateURLQuery,
	ValidateURLFragment,
	ValidateURLUnencoded,
}

const (
	ci     = FlagCaseInsensitive
	greedy = FlagGreedy
)

// DefineGrammar registers every fragment of the entity grammar. Fragments
// are defined after the fragments they embed.
func DefineGrammar(r *Registry) {
	defineCharacters(r)
	defineHashtags(r)
	defineMentions(r)
	defineURLs(r)
	defineCashtags(r)
	defineURLValidation(r)
}

func defineCharacters(r *Registry) {
	r.DefineClass(SpacesGroup, charclass.UnicodeSpaces)
	r.Define(Spaces, `[#{spacesGroup}]`, 0)
	r.DefineClass(InvalidCharsGroup, charclass.InvalidChars)
	r.Define(Punct, `\!'#%&'\(\)*\+,\\\-\.\/:;<=>\?@\[\]\^_\{\|\}~\$`, 0)

	blocks, err := charclass.RTLBlocks()
	if err != nil {
		r.fail(err)

		return
	}

	alternatives := make([]string, 0, len(blocks))
	for _, b := range blocks {
		alternatives = append(alternatives, "["+b.String()+"]")
	}

	r.Define(RTLChars, strings.Join(alternatives, "|"), FlagMultiline|greedy)

	nonBMP, err := charclass.NonBMPChars()
	if err != nil {
		r.fail(err)

		return
	}

	r.Define(NonBMPChars, "["+nonBMP.String()+"]", FlagMultiline|greedy)

	r.DefineClass(NonLatinHashtagChars, charclass.NonLatinHashtagChars)
	r.DefineClass(LatinAccentChars, charclass.LatinAccentChars)
}

// A hashtag is letters, digits and underscores, but not only digits.
func defineHashtags(r *Registry) {
	r.Define(HashSigns, `[#＃]`, 0)
	r.Define(HashtagAlpha, `[a-z_#{latinAccentChars}#{nonLatinHashtagChars}]`, ci)
	r.Define(HashtagAlphaNumeric, `[a-z0-9_#{latinAccentChars}#{nonLatinHashtagChars}]`, ci)
	r.Define(EndHashtagMatch, `^(?:#{hashSigns}|:\/\/)`, 0)
	r.Define(HashtagBoundary, `(?:^|$|[^&a-z0-9_#{latinAccentChars}#{nonLatinHashtagChars}])`, 0)
	r.Define(ValidHashtag,
		`(#{hashtagBoundary})`+ // $1 boundary
			`(#{hashSigns})`+ // $2 hash sign
			`(#{hashtagAlphaNumeric}*#{hashtagAlpha}#{hashtagAlphaNumeric}*)`, // $3 tag
		greedy|ci)
}

func defineMentions(r *Registry) {
	r.Define(ValidMentionPrecedingChars, `(?:^|[^a-zA-Z0-9_!#$%&*@＠]|RT:?)`, 0)
	r.Define(AtSigns, `[@＠]`, 0)
	r.Define(ValidMentionOrList,
		`(#{validMentionPrecedingChars})`+ // $1 preceding character
			`(#{atSigns})`+ // $2 at sign
			`([a-zA-Z0-9_]{1,20})`+ // $3 screen name
			`(\/[a-zA-Z][a-zA-Z0-9_\-]{0,24})?`, // $4 list slug
		greedy)
	r.Define(ValidReply, `^(?:#{spaces})*#{atSigns}([a-zA-Z0-9_]{1,20})`, 0)
	r.Define(EndMentionMatch, `^(?:#{atSigns}|[#{latinAccentChars}]|:\/\/)`, 0)
}

const gTLDs = "aero|asia|biz|cat|com|coop|edu|gov|info|int|jobs|mil|mobi|museum|name|net|org|pro|tel|travel|xxx"

const ccTLDs = "ac|ad|ae|af|ag|ai|al|am|an|ao|aq|ar|as|at|au|aw|ax|az|ba|bb|bd|be|bf|bg|bh|bi|bj|bm|bn|bo|br|bs|bt|bv|bw|by|bz|" +
	"ca|cc|cd|cf|cg|ch|ci|ck|cl|cm|cn|co|cr|cs|cu|cv|cx|cy|cz|dd|de|dj|dk|dm|do|dz|ec|ee|eg|eh|er|es|et|eu|fi|fj|fk|fm|fo|fr|" +
	"ga|gb|gd|ge|gf|gg|gh|gi|gl|gm|gn|gp|gq|gr|gs|gt|gu|gw|gy|hk|hm|hn|hr|ht|hu|id|ie|il|im|in|io|iq|ir|is|it|je|jm|jo|jp|" +
	"ke|kg|kh|ki|km|kn|kp|kr|kw|ky|kz|la|lb|lc|li|lk|lr|ls|lt|lu|lv|ly|ma|mc|md|me|mg|mh|mk|ml|mm|mn|mo|mp|mq|mr|ms|mt|mu|mv|mw|mx|my|mz|" +
	"na|nc|ne|nf|ng|ni|nl|no|np|nr|nu|nz|om|pa|pe|pf|pg|ph|pk|pl|pm|pn|pr|ps|pt|pw|py|qa|re|ro|rs|ru|rw|" +
	"sa|sb|sc|sd|se|sg|sh|si|sj|sk|sl|sm|sn|so|sr|ss|st|su|sv|sx|sy|sz|tc|td|tf|tg|th|tj|tk|tl|tm|tn|to|tp|tr|tt|tv|tw|tz|" +
	"ua|ug|uk|us|uy|uz|va|vc|ve|vg|vi|vn|vu|wf|ws|ye|yt|za|zm|zw"

// tldBoundary keeps a TLD from matching the prefix of a longer label.
const tldBoundary = `(?=[^0-9a-zA-Z]|$)`

func defineURLs(r *Registry) {
	r.Define(ValidURLPrecedingChars, `(?:[^A-Za-z0-9@＠$#＃#{invalidCharsGroup}]|^)`, 0)
	r.Define(InvalidURLWithoutProtocolPrecedingChars, `[-_.\/]$`, 0)
	r.Define(InvalidDomainChars, `#{punct}#{spacesGroup}#{invalidCharsGroup}`, 0)
	r.Define(ValidDomainChars, `[^#{invalidDomainChars}]`, 0)
	r.Define(ValidSubdomain, `(?:(?:#{validDomainChars}(?:[_-]|#{validDomainChars})*)?#{validDomainChars}\.)`, 0)
	r.Define(ValidDomainName, `(?:(?:#{validDomainChars}(?:-|#{validDomainChars})*)?#{validDomainChars}\.)`, 0)
	r.Define(ValidGTLD, `(?:(?:`+gTLDs+`)`+tldBoundary+`)`, 0)
	r.Define(ValidCCTLD, `(?:(?:`+ccTLDs+`)`+tldBoundary+`)`, 0)
	r.Define(ValidPunycode, `(?:xn--[0-9a-z]+)`, 0)
	r.Define(ValidDomain, `(?:#{validSubdomain}*#{validDomainName}(?:#{validGTLD}|#{validCCTLD}|#{validPunycode}))`, 0)
	r.Define(ValidASCIIDomain, `(?:(?:[\-a-z0-9#{latinAccentChars}]+)\.)+(?:#{validGTLD}|#{validCCTLD}|#{validPunycode})`, greedy|ci)
	r.Define(InvalidShortDomain, `^#{validDomainName}#{validCCTLD}$`, 0)
	r.Define(ValidPortNumber, `[0-9]+`, 0)

	r.Define(ValidGeneralURLPathChars, `[a-z0-9!\*';:=\+,\.\$\/%#\[\]\-_~@|&#{latinAccentChars}]`, ci)
	// Balanced parens, as in /Primer_(film) or IIS sessions like /S(dfd346)/.
	r.Define(ValidURLBalancedParens, `\(#{validGeneralUrlPathChars}+\)`, ci)
	// Characters a path may end with, so a trailing period is left out.
	r.Define(ValidURLPathEndingChars, `[\+\-a-z0-9=_#\/#{latinAccentChars}]|(?:#{validUrlBalancedParens})`, ci)
	// @ is allowed mid-path only, as in http://example.com/@user/.
	r.Define(ValidURLPath,
		`(?:`+
			`(?:`+
			`#{validGeneralUrlPathChars}*`+
			`(?:#{validUrlBalancedParens}#{validGeneralUrlPathChars}*)*`+
			`#{validUrlPathEndingChars}`+
			`)|(?:@#{validGeneralUrlPathChars}+\/)`+
			`)`, ci)
	r.Define(ValidURLQueryChars, `[a-z0-9!?\*'@\(\);:&=\+\$\/%#\[\]\-_\.,~|]`, ci)
	r.Define(ValidURLQueryEndingChars, `[a-z0-9_&=#\/]`, ci)

	r.Define(ExtractURL,
		`(`+ // $1 total match
			`(#{validUrlPrecedingChars})`+ // $2 preceding character
			`(`+ // $3 URL
			`(https?:\/\/)?`+ // $4 protocol
			`(#{validDomain})`+ // $5 domain
			`(?::(#{validPortNumber}))?`+ // $6 port
			`(\/#{validUrlPath}*)?`+ // $7 path
			`(\?#{validUrlQueryChars}*#{validUrlQueryEndingChars})?`+ // $8 query
			`)`+
			`)`, ci|greedy)

	r.Define(ValidTcoURL, `^https?:\/\/t\.co\/[a-z0-9]+`, ci)
	r.Define(URLHasProtocol, `^https?:\/\/`, ci)
	r.Define(URLHasHTTPS, `^https:\/\/`, ci)
}

func defineCashtags(r *Registry) {
	r.Define(Cashtag, `[a-z]{1,6}(?:[._][a-z]{1,2})?`, ci)
	r.Define(ValidCashtag,
		`(^|#{spaces})`+ // $1 boundary
			`(\$)`+ // $2 dollar sign
			`(#{cashtag})`+ // $3 symbol
			`(?=$|\s|[#{punct}])`,
		ci|greedy)
}

// URL validation follows the ABNF of RFC 3986, more strictly for hosts.
func defineURLValidation(r *Registry) {
	r.Define(ValidateURLUnreserved, `[a-z0-9\-._~]`, ci)
	r.Define(ValidateURLPctEncoded, `(?:%[0-9a-f]{2})`, ci)
	r.Define(ValidateURLSubDelims, `[!$&'()*+,;=]`, ci)
	r.Define(ValidateURLPchar,
		`(?:`+
			`#{validateUrlUnreserved}|`+
			`#{validateUrlPctEncoded}|`+
			`#{validateUrlSubDelims}|`+
			`[:|@]`+
			`)`, ci)

	r.Define(ValidateURLScheme, `(?:[a-z][a-z0-9+\-.]*)`, ci)
	r.Define(ValidateURLUserinfo,
		`(?:`+
			`#{validateUrlUnreserved}|`+
			`#{validateUrlPctEncoded}|`+
			`#{validateUrlSubDelims}|`+
			`:`+
			`)*`, ci)

	r.Define(ValidateURLDecOctet, `(?:[0-9]|(?:[1-9][0-9])|(?:1[0-9]{2})|(?:2[0-4][0-9])|(?:25[0-5]))`, ci)
	r.Define(ValidateURLIPv4, `(?:#{validateUrlDecOctet}(?:\.#{validateUrlDecOctet}){3})`, ci)
	// IPv6 and IPvFuture are only checked loosely.
	r.Define(ValidateURLIPv6, `(?:\[[a-f0-9:\.]+\])`, ci)
	r.Define(ValidateURLIP, `(?:#{validateUrlIpv4}|#{validateUrlIpv6})`, ci)

	r.Define(ValidateURLSubDomainSegment, `(?:[a-z0-9](?:[a-z0-9_\-]*[a-z0-9])?)`, ci)
	r.Define(ValidateURLDomainSegment, `(?:[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?)`, ci)
	r.Define(ValidateURLDomainTLD, `(?:[a-z](?:[a-z0-9\-]*[a-z0-9])?)`, ci)
	r.Define(ValidateURLDomain,
		`(?:(?:#{validateUrlSubDomainSegment}\.)*(?:#{validateUrlDomainSegment}\.)#{validateUrlDomainTld})`, ci)
	r.Define(ValidateURLHost, `(?:#{validateUrlIp}|#{validateUrlDomain})`, ci)

	// Unencoded internationalized domains. Invalid UTF-8 is not checked.
	r.Define(ValidateURLUnicodeSubDomainSegment,
		`(?:(?:[a-z0-9]|[^\x00-\x7f])(?:(?:[a-z0-9_\-]|[^\x00-\x7f])*(?:[a-z0-9]|[^\x00-\x7f]))?)`, ci)
	r.Define(ValidateURLUnicodeDomainSegment,
		`(?:(?:[a-z0-9]|[^\x00-\x7f])(?:(?:[a-z0-9\-]|[^\x00-\x7f])*(?:[a-z0-9]|[^\x00-\x7f]))?)`, ci)
	r.Define(ValidateURLUnicodeDomainTLD,
		`(?:(?:[a-z]|[^\x00-\x7f])(?:(?:[a-z0-9\-]|[^\x00-\x7f])*(?:[a-z0-9]|[^\x00-\x7f]))?)`, ci)
	r.Define(ValidateURLUnicodeDomain,
		`(?:(?:#{validateUrlUnicodeSubDomainSegment}\.)*(?:#{validateUrlUnicodeDomainSegment}\.)#{validateUrlUnicodeDomainTld})`, ci)
	r.Define(ValidateURLUnicodeHost, `(?:#{validateUrlIp}|#{validateUrlUnicodeDomain})`, ci)

	r.Define(ValidateURLPort, `[0-9]{1,5}`, 0)

	r.Define(ValidateURLUnicodeAuthority,
		`(?:(#{validateUrlUserinfo})@)?`+ // $1 userinfo
			`(#{validateUrlUnicodeHost})`+ // $2 host
			`(?::(#{validateUrlPort}))?`, // $3 port
		ci)
	r.Define(ValidateURLAuthority,
		`(?:(#{validateUrlUserinfo})@)?`+ // $1 userinfo
			`(#{validateUrlHost})`+ // $2 host
			`(?::(#{validateUrlPort}))?`, // $3 port
		ci)

	r.Define(ValidateURLPath, `(\/#{validateUrlPchar}*)*`, ci)
	r.Define(ValidateURLQuery, `(#{validateUrlPchar}|\/|\?)*`, ci)
	r.Define(ValidateURLFragment, `(#{validateUrlPchar}|\/|\?)*`, ci)

	// RFC 3986 appendix B, modified.
	r.Define(ValidateURLUnencoded,
		`^`+
			`(?:`+
			`([^:/?#]+):\/\/`+ // $1 scheme
			`)?`+
			`([^/?#]*)`+ // $2 authority
			`([^?#]*)`+ // $3 path
			`(?:`+
			`\?([^#]*)`+ // $4 query
			`)?`+
			`(?:`+
			`#(.*)`+ // $5 fragment
			`)?$`,
		ci)
}
