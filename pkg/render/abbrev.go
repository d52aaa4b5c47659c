package render

import (
	"strings"
	"unicode"
)

// Abbreviations returns a short unique tag per part: the initials of its
// words ("Soprano 1" is "S1"), with the first word lengthened until no two
// parts share a tag ("Bass" and "Baritone" become "Bas" and "Bar").
func Abbreviations(parts []string) map[string]string {
	level := make(map[string]int, len(parts))
	for _, p := range parts {
		level[p] = 1
	}
	out := make(map[string]string, len(parts))
	for range 16 {
		byTag := make(map[string][]string, len(parts))
		for _, p := range parts {
			tag := abbreviate(p, level[p])
			out[p] = tag
			byTag[tag] = append(byTag[tag], p)
		}
		clash := false
		for _, group := range byTag {
			if len(group) < 2 {
				continue
			}
			clash = true
			for _, p := range group {
				level[p]++
			}
		}
		if !clash {
			break
		}
	}
	return out
}

func abbreviate(part string, n int) string {
	words := strings.Fields(part)
	if len(words) == 0 {
		return "?"
	}
	var b strings.Builder
	first := []rune(words[0])
	b.WriteRune(unicode.ToUpper(first[0]))
	b.WriteString(string(first[1:min(n, len(first))]))
	for _, w := range words[1:] {
		b.WriteRune(unicode.ToUpper([]rune(w)[0]))
	}
	return b.String()
}
