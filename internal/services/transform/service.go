package transform

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vatscope/internal/interfaces"
)

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	spaces     = regexp.MustCompile(`\s+`)
)

// Service converts registry pages to markdown
type Service struct {
	logger arbor.ILogger
}

var _ interfaces.TransformService = (*Service)(nil)

// NewService creates a new transform service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

// HTMLToMarkdown converts HTML content to markdown, resolving links against baseURL.
// When the converter fails or yields nothing the plain text of the page is returned.
func (s *Service) HTMLToMarkdown(html string, baseURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	converter := md.NewConverter(baseURL, true, nil)
	converted, err := converter.ConvertString(html)
	if err != nil {
		s.logger.Warn().Err(err).Msg("HTML to markdown conversion failed, using plain text")
		return plainText(html)
	}

	converted = strings.TrimSpace(blankLines.ReplaceAllString(strings.ReplaceAll(converted, "\u00a0", " "), "\n\n"))
	if converted == "" {
		s.logger.Warn().Int("html_length", len(html)).Msg("HTML to markdown conversion produced empty output, using plain text")
		return plainText(html)
	}

	s.logger.Debug().
		Int("markdown_length", len(converted)).
		Int("html_length", len(html)).
		Msg("HTML to markdown conversion successful")
	return converted, nil
}

func plainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(spaces.ReplaceAllString(doc.Text(), " ")), nil
}
