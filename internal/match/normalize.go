package match

import (
	"strings"
	"unicode"
)

// kindTokens name the kind of a datasource rather than the datasource.
var kindTokens = []string{"datasource", "influxdb", "influx", "db"}

// Tokens splits name into lower case words. Words end at characters other
// than letters and digits, before an upper case letter following a lower
// case letter or a digit, and before the last capital of an acronym.
func Tokens(name string) []string {
	var (
		tokens []string
		word   []rune
	)

	flush := func() {
		if len(word) > 0 {
			tokens = append(tokens, strings.ToLower(string(word)))
			word = word[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}

		if i > 0 && wordStart(runes, i) {
			flush()
		}

		word = append(word, r)
	}

	flush()

	return tokens
}

func wordStart(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	// "HTTPServer": the S starts a word
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// Normalize joins the tokens of name, so "tcp_influxdb", "TCP InfluxDB" and
// "tcpInfluxDB" compare equal.
func Normalize(name string) string {
	return strings.Join(Tokens(name), "")
}

// stem joins tokens without a trailing kind token.
func stem(tokens []string) string {
	if n := len(tokens); n > 1 {
		for _, k := range kindTokens {
			if tokens[n-1] == k {
				return strings.Join(tokens[:n-1], "")
			}
		}
	}

	return strings.Join(tokens, "")
}
