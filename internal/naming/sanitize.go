package naming

import (
	"regexp"
	"strings"
)

var (
	whitespaceRunRegex = regexp.MustCompile(`\s+`)
	dotRunRegex        = regexp.MustCompile(`\.{2,}`)
	dashRunRegex       = regexp.MustCompile(`-{2,}`)

	dashedCharReplacer   = strings.NewReplacer(":", "-", "/", "-", `\`, "-", "|", "-")
	strippedCharReplacer = strings.NewReplacer("?", "", "*", "", "<", "", ">", "", `"`, "")
)

// Sanitize converts an arbitrary title into a filesystem-safe, dotted name.
// Whitespace runs become single dots, commas vanish, path and pipe
// characters become dashes, and the remaining reserved characters are
// dropped. Total and idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	s := whitespaceRunRegex.ReplaceAllString(raw, ".")
	s = strings.ReplaceAll(s, ",", "")
	s = dashedCharReplacer.Replace(s)
	s = strippedCharReplacer.Replace(s)
	s = dotRunRegex.ReplaceAllString(s, ".")
	s = dashRunRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, ".-")
	return strings.TrimSpace(s)
}
