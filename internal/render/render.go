package render

import (
	blackfriday "gopkg.in/russross/blackfriday.v2"
)

// MarkdownToHTML renders user supplied markdown into safe HTML.
func MarkdownToHTML(s string) string {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink |
			blackfriday.NofollowLinks |
			blackfriday.NoreferrerLinks |
			blackfriday.HrefTargetBlank,
	})
	return string(blackfriday.Run([]byte(s), blackfriday.WithRenderer(renderer)))
}
