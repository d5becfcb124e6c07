// Package share formats public links for sharing and copies them to the
// system clipboard.
package share

import (
	"net/url"
	"strings"

	"github.com/Veraticus/redact-flow/internal/model"
)

// DefaultMessage prefixes the link in prefilled messages.
const DefaultMessage = "Here is the redacted document:"

// Links holds the static presentations of one public link.
type Links struct {
	URL      string
	WhatsApp string
	Email    string
}

// Format derives the message-app link, the email link and the copyable URL
// for link. An empty message uses DefaultMessage. Format does no I/O.
func Format(link model.PublicLink, message string) Links {
	if link.IsZero() {
		return Links{}
	}
	if message == "" {
		message = DefaultMessage
	}

	text := message + " " + link.URL

	subject := "Redacted document"
	if link.Filename != "" {
		subject += ": " + link.Filename
	}

	return Links{
		URL:      link.URL,
		WhatsApp: "https://wa.me/?text=" + escape(text),
		Email:    "mailto:?subject=" + escape(subject) + "&body=" + escape(text),
	}
}

// escape percent-encodes s for use in a query value, using %20 for spaces so
// mail clients do not show literal plus signs.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
