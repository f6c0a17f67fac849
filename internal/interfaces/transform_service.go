package interfaces

// TransformService renders registry HTML as markdown
type TransformService interface {
	// HTMLToMarkdown converts HTML content to markdown
	// baseURL is used for resolving relative links
	HTMLToMarkdown(html string, baseURL string) (string, error)
}
