package util

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

//go:embed version.txt
var embeddedVersion string

var urlRegex = regexp.MustCompile(`^https?://[^\s]+$`)

func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

func GetNameAndVersion() string {
	return fmt.Sprintf("%s / %s", Name, GetVersion())
}

// UserAgent is sent with every API request
func UserAgent() string {
	return fmt.Sprintf("%s/%s", Name, GetVersion())
}

func PrettyPrint(i any) string {
	s, _ := json.MarshalIndent(i, "", " ")
	return string(s)
}

// IsURL checks if a given string is a valid HTTP or HTTPS URL
func IsURL(text string) bool {
	text = strings.TrimSpace(text)

	return urlRegex.MatchString(text)
}

// TruncateWidth cuts s to at most width terminal cells, adding an ellipsis
// when something was cut. Wide runes (CJK, emoji) count as two cells.
func TruncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
