package core

import (
	"strconv"
	"strings"
	"time"
)

const maxSlugLen = 40

// accentFold maps Latin accented letters to their ASCII base letters.
// Nordic letters first since source documents are frequently fi/sv.
var accentFold = map[rune]string{
	'å': "a", 'ä': "a", 'ö': "o",
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'æ': "ae",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ñ': "n",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ø': "o", 'œ': "oe",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ý': "y", 'ÿ': "y",
	'š': "s", 'ž': "z", 'ß': "ss", 'đ': "d",
}

// Slugify converts free text into a lower-case, hyphenated, ASCII-only
// identifier: accents are folded, any run of characters outside [a-z0-9]
// becomes a single hyphen, edges are trimmed and the result is truncated
// to 40 characters. Empty input yields "".
func Slugify(name string) string {
	if name == "" {
		return ""
	}
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		if folded, ok := accentFold[r]; ok {
			b.WriteString(folded)
			lastHyphen = false
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	s := strings.Trim(b.String(), "-")
	if len(s) > maxSlugLen {
		s = strings.Trim(s[:maxSlugLen], "-")
	}
	return s
}

// RequirementKey derives the storage key for a requirement from its title
// and id: slugified title plus the first 8 characters of the id. A title
// that slugifies to nothing falls back to the "req" prefix, and a missing
// id falls back to a base-36 timestamp so the key is still unique enough.
// Stable for a given (title, id) pair.
func RequirementKey(title, id string) string {
	src := title
	if src == "" {
		src = "untitled"
	}
	slug := Slugify(src)
	if slug == "" {
		slug = "req"
	}

	suffix := id
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	if suffix == "" {
		suffix = strconv.FormatInt(time.Now().UnixMilli(), 36)
	}

	key := slug + "-" + suffix
	for strings.Contains(key, "--") {
		key = strings.ReplaceAll(key, "--", "-")
	}
	return strings.Trim(key, "-")
}
