package hunmorph

import (
	"strings"
	"unicode/utf8"
)

// wordDelimiters are the characters a word can never contain. Hyphen (-)
// and apostrophe (') are deliberately absent: they may be legal word parts
// ("красно-белый", "п'ятниця").
const wordDelimiters = "!\"()*,./:;<>?[]^`{} \t\r\n"

// delimiterTable is an ASCII lookup table built from wordDelimiters.
var delimiterTable = func() [utf8.RuneSelf]bool {
	var t [utf8.RuneSelf]bool
	for _, r := range wordDelimiters {
		t[r] = true
	}
	return t
}()

func isWordDelimiter(r rune) bool {
	return r < utf8.RuneSelf && delimiterTable[r]
}

// SplitWords splits text into individual words. A maximal run of delimiter
// characters acts as one separator, so no empty tokens are produced.
// Tokens are returned in first-occurrence order with duplicates collapsed.
func SplitWords(text string) []string {
	fields := strings.FieldsFunc(text, isWordDelimiter)
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	tokens := fields[:0]
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}
