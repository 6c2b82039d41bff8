package skeleton

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

// Escape makes s safe for element text and attribute values. Named entities
// cover markup characters; line breaks and tabs become numeric references.
func Escape(s string) string {
	return escaper.Replace(s)
}
