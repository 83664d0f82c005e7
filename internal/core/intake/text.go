package intake

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains: NFC then drop format chars (ZWJ, ZWNJ, BOM)
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.Cf)))
	},
}

func canon(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	tr := chainPool.Get().(transform.Transformer)
	out, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	return out
}

// cleanLabel canonicalizes a short label and collapses whitespace runs
func cleanLabel(s string) string {
	return strings.Join(strings.Fields(canon(s)), " ")
}

// cleanText canonicalizes free text, keeping line structure
func cleanText(s string) string {
	return strings.TrimSpace(canon(s))
}
