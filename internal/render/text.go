package render

import (
	"strings"
	"unicode/utf8"
)

// Average glyph advance as a fraction of the font size.
const (
	glyphWidth     = 0.55
	boldGlyphWidth = 0.6
	lineSpacing    = 1.5
)

func lineHeight(size float64) float64 {
	return size * lineSpacing
}

// measure estimates the rendered width of s.
func measure(s string, size float64, bold bool) float64 {
	factor := glyphWidth
	if bold {
		factor = boldGlyphWidth
	}
	return float64(utf8.RuneCountInString(s)) * size * factor
}

// wrap breaks s into lines no wider than width. Explicit newlines are
// kept and words longer than a line are split.
func wrap(s string, size float64, bold bool, width float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var cur string
		for _, word := range words {
			for word != "" && measure(word, size, bold) > width {
				if cur != "" {
					lines = append(lines, cur)
					cur = ""
				}
				head, tail := splitToWidth(word, size, bold, width)
				lines = append(lines, head)
				word = tail
			}
			if word == "" {
				continue
			}
			switch {
			case cur == "":
				cur = word
			case measure(cur+" "+word, size, bold) <= width:
				cur += " " + word
			default:
				lines = append(lines, cur)
				cur = word
			}
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}

// splitToWidth returns the longest prefix of word that fits width, at
// least one rune, and the remainder.
func splitToWidth(word string, size float64, bold bool, width float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && measure(string(runes[:n+1]), size, bold) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
