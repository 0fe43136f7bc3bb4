package conversion

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"markitdown-api/internal/config"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

// Patterns are applied in order; later ones assume earlier ones already ran
// (images before links, rules before list markers, bold before italic).
var (
	codeFencePattern   = regexp.MustCompile("(?s)```.*?```")
	imagePattern       = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern        = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headingPattern     = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+`)
	blockquotePattern  = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	rulePattern        = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|\*{3,}|_{3,})[ \t]*$`)
	tableRulePattern   = regexp.MustCompile(`(?m)^[ \t]*(?:\|[ \t]*:?-+:?[ \t]*(?:\|[ \t]*:?-+:?[ \t]*)*\|?|:?-+:?[ \t]*(?:\|[ \t]*:?-+:?[ \t]*)+\|?)[ \t]*$`)
	listMarkerPattern  = regexp.MustCompile(`(?m)^([ \t]*)(?:[-*+]|\d+[.)])[ \t]+`)
	boldStarPattern    = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	boldUnderPattern   = regexp.MustCompile(`__([^_\n]+)__`)
	italicStarPattern  = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicUnderPattern = regexp.MustCompile(`(^|\W)_([^_\n]+)_(\W|$)`)
	strikePattern      = regexp.MustCompile(`~~([^~\n]+)~~`)
	inlineCodePattern  = regexp.MustCompile("`([^`\n]+)`")
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
)

type contentAnalyzer struct {
	charsPerPage int
}

// NewContentAnalyzer creates the analyzer behind the response metadata.
// charsPerPage <= 0 falls back to config.DefaultCharsPerPage.
func NewContentAnalyzer(charsPerPage int) convSvc.ContentAnalyzer {
	if charsPerPage <= 0 {
		charsPerPage = config.DefaultCharsPerPage
	}
	return &contentAnalyzer{charsPerPage: charsPerPage}
}

// PlainText removes markdown syntax from text
func (a *contentAnalyzer) PlainText(markdown string) string {
	text := strings.ReplaceAll(markdown, "\r\n", "\n")

	text = codeFencePattern.ReplaceAllString(text, "")
	text = imagePattern.ReplaceAllString(text, "")
	text = linkPattern.ReplaceAllString(text, "$1")

	text = headingPattern.ReplaceAllString(text, "")
	text = blockquotePattern.ReplaceAllString(text, "")

	// Table separator rows would otherwise look like horizontal rules
	text = tableRulePattern.ReplaceAllString(text, "")
	text = rulePattern.ReplaceAllString(text, "")
	text = listMarkerPattern.ReplaceAllString(text, "$1")
	text = stripTablePipes(text)

	text = stripEmphasis(text)
	text = inlineCodePattern.ReplaceAllString(text, "$1")

	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// CountWords counts maximal runs of non-whitespace
func (a *contentAnalyzer) CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountCharacters counts code points, not bytes
func (a *contentAnalyzer) CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// EstimatePages returns max(1, ceil(characters / charsPerPage))
func (a *contentAnalyzer) EstimatePages(characters int) int {
	pages := (characters + a.charsPerPage - 1) / a.charsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

// stripEmphasis peels emphasis markers until none match, so nested spans
// like "**bold *nested* text**" lose their outer markers too.
// Every pass that changes text shortens it, so the loop terminates.
func stripEmphasis(text string) string {
	for {
		next := boldStarPattern.ReplaceAllString(text, "$1")
		next = boldUnderPattern.ReplaceAllString(next, "$1")
		next = italicStarPattern.ReplaceAllString(next, "$1")
		next = italicUnderPattern.ReplaceAllString(next, "$1$2$3")
		next = strikePattern.ReplaceAllString(next, "$1")
		if next == text {
			return text
		}
		text = next
	}
}

// stripTablePipes turns "| a | b |" rows into "a  b"
func stripTablePipes(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") || !strings.HasSuffix(trimmed, "|") || len(trimmed) < 2 {
			continue
		}
		cells := strings.Split(trimmed[1:len(trimmed)-1], "|")
		for j := range cells {
			cells[j] = strings.TrimSpace(cells[j])
		}
		lines[i] = strings.Join(cells, "  ")
	}
	return strings.Join(lines, "\n")
}
