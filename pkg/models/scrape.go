package models

// Content formats a scraping engine can return.
const (
	ContentFormatMarkdown = "markdown"
	ContentFormatHTML     = "html"
)

// ScrapedContent is the text of a scraped page plus the format it arrived
// in, so downstream processing knows whether an HTML cleaning pass is
// needed before the text reaches the language model.
type ScrapedContent struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}
