package cleaner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// translitTable maps early-modern print characters that survive markup
// cleaning to their ASCII equivalents. Accented letters are not listed;
// the accent-stripping transform below covers them.
var translitTable = map[rune]string{
	'ſ': "s",
	'þ': "th",
	'Þ': "Th",
	'ð': "th",
	'Ð': "Th",
	'æ': "ae",
	'Æ': "AE",
	'œ': "oe",
	'Œ': "OE",
	'Ʋ': "V",
	'ʋ': "v",
	'ƿ': "w",
	'Ƿ': "W",
	'ȝ': "g",
	'Ȝ': "G",
	'ß': "ss",
	'ﬀ': "ff",
	'ﬁ': "fi",
	'ﬂ': "fl",
	'ﬃ': "ffi",
	'ﬄ': "ffl",
	'ﬅ': "st",
	'ﬆ': "st",
	'‘': "'",
	'’': "'",
	'‛': "'",
	'“': `"`,
	'”': `"`,
	'„': `"`,
	'—': " ",
	'–': "-",
	'…': " ",
	'•': "",
	'▪': "",
	'❧': "",
	'¶': "",
	'§': "",
}

// stripAccents decomposes, removes combining marks, and recomposes, so
// that accented letters fold to their base ASCII letter.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ASCIICleaner transliterates text to ASCII. Characters with no known
// transliteration and no ASCII base letter become the unknown-character
// placeholder so that downstream word counts stay honest about loss.
// Vertical bars (verse separators in some transcriptions) are dropped.
type ASCIICleaner struct {
	placeholder rune
}

// NewASCII creates an ASCII transliteration cleaner with the default
// unknown-character placeholder '@'.
func NewASCII() *ASCIICleaner {
	return &ASCIICleaner{placeholder: '@'}
}

// Clean transliterates the input to ASCII.
func (c *ASCIICleaner) Clean(text string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '|':
			// dropped entirely
		case r < utf8.RuneSelf:
			sb.WriteRune(r)
		default:
			sb.WriteString(c.transliterate(r))
		}
	}
	return sb.String(), nil
}

func (c *ASCIICleaner) transliterate(r rune) string {
	if rep, ok := translitTable[r]; ok {
		return rep
	}
	folded, _, err := transform.String(stripAccents, string(r))
	if err == nil && isASCII(folded) {
		return folded
	}
	return string(c.placeholder)
}

// Name returns the cleaner type.
func (c *ASCIICleaner) Name() string {
	return "ascii"
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
