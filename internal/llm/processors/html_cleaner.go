package processors

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLCleaner strips page chrome from scraped HTML so only text relevant
// to the job posting reaches the language model.
type HTMLCleaner struct {
	removeTags []string
}

// NewHTMLCleaner creates a new HTML cleaner instance.
func NewHTMLCleaner() *HTMLCleaner {
	return &HTMLCleaner{
		removeTags: []string{
			"script", "style", "noscript", "iframe", "object", "embed",
			"form", "input", "button", "select", "textarea",
			"nav", "header", "footer", "aside", "menu",
			"svg", "path", "g", "defs", "use", "symbol",
			"meta", "link", "base",
		},
	}
}

// ExtractJobContent pulls the text most likely to contain the posting out
// of raw page HTML.
func (hc *HTMLCleaner) ExtractJobContent(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, tag := range hc.removeTags {
		doc.Find(tag).Remove()
	}

	// Common containers for job posting content
	jobSelectors := []string{
		"main", "[role='main']", "#main",
		".job", ".job-posting", ".job-detail", ".job-description",
		".posting", ".position", ".vacancy", ".opportunity",
		"article", "section[class*='job']", "section[class*='posting']",
		"[data-testid*='job']", "[data-test*='job']",
	}

	var contentParts []string
	for _, selector := range jobSelectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); len(text) > 50 {
				contentParts = append(contentParts, text)
			}
		})
	}

	if len(contentParts) == 0 {
		if bodyText := doc.Find("body").Text(); bodyText != "" {
			contentParts = append(contentParts, bodyText)
		}
	}

	return cleanExtractedText(strings.Join(contentParts, "\n\n")), nil
}

var (
	whitespaceRegex = regexp.MustCompile(`[ \t]+`)
	newlineRegex    = regexp.MustCompile(`\n{3,}`)

	noisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bJavaScript\s+is\s+disabled\b.*?enabled\.`),
		regexp.MustCompile(`\bCookies?\s+are\s+disabled\b.*?enabled\.`),
		regexp.MustCompile(`\bPlease\s+enable\s+JavaScript\b[^\n]*`),
		regexp.MustCompile(`\bThis\s+site\s+requires\s+JavaScript\b[^\n]*`),
	}
)

func cleanExtractedText(text string) string {
	text = whitespaceRegex.ReplaceAllString(text, " ")
	text = newlineRegex.ReplaceAllString(text, "\n\n")

	for _, pattern := range noisePatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}
