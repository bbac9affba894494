package matching

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tebeka/snowball"
)

const (
	minTokenRunes   = 2
	stemmerLanguage = "english"
)

// tokenize lower-cases text and splits it into word tokens of at least two runes.
// Word runes are letters, digits and underscore.
func tokenize(text string, stem bool) ([]string, error) {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	if len(raw) == 0 {
		return nil, nil
	}

	var stemmer *snowball.Stemmer
	if stem {
		var err error
		stemmer, err = snowball.New(stemmerLanguage)
		if err != nil {
			return nil, fmt.Errorf("create %s stemmer: %w", stemmerLanguage, err)
		}
		defer stemmer.Close()
	}

	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if utf8.RuneCountInString(t) < minTokenRunes {
			continue
		}
		if stemmer != nil {
			t = stemmer.Stem(t)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
