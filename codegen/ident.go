package codegen

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	keepUnicode = []*unicode.RangeTable{
		unicode.Letter,
		unicode.Number,
	}
	dropUnicode = []*unicode.RangeTable{
		unicode.Mark,
		unicode.Sk,
		unicode.Lm,
	}
	title = cases.Title(language.Und)
)

// words splits s into runs of letters and digits after decomposing accented
// characters and dropping the accents, so "Traiter Données" gives
// ["Traiter", "Donnees"].
func words(s string) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range norm.NFKD.String(s) {
		switch {
		case unicode.IsOneOf(keepUnicode, r):
			cur = append(cur, r)
		case unicode.IsOneOf(dropUnicode, r):
		default:
			flush()
		}
	}
	flush()
	return out
}

// Identifier turns an activity name into an exported Go identifier. Names
// that do not start with an upper-case letter after title-casing, such as
// "2nd pass" or "日本", are prefixed with "A".
func Identifier(name string) string {
	var b strings.Builder
	for _, w := range words(name) {
		b.WriteString(title.String(w))
	}
	id := b.String()
	if id == "" {
		return "Activity"
	}
	if !token.IsExported(id) {
		id = "A" + id
	}
	return id
}

// ParamName turns an arrow label into an unexported Go identifier. An empty
// label yields "data".
func ParamName(label string) string {
	ws := words(label)
	if len(ws) == 0 {
		return "data"
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(ws[0]))
	for _, w := range ws[1:] {
		b.WriteString(title.String(w))
	}
	id := b.String()
	if !unicode.IsLetter([]rune(id)[0]) {
		id = "v" + id
	}
	if token.IsKeyword(id) {
		id += "_"
	}
	return id
}

// uniquer hands out names, suffixing repeats with 2, 3, ...
type uniquer map[string]int

func (u uniquer) take(name string) string {
	n := u[name]
	u[name] = n + 1
	if n == 0 {
		return name
	}
	candidate := name + strconv.Itoa(n+1)
	for u[candidate] > 0 {
		n++
		candidate = name + strconv.Itoa(n+1)
	}
	u[candidate] = 1
	return candidate
}
