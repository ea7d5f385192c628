package markdown

import "strings"

// InsertIntoBlock adds entry at the end of the region opened by startMarker and
// closed by the first endMarker after it. When the region is missing, a new one
// holding entry is appended to body; existing text is never dropped.
func InsertIntoBlock(body, startMarker, endMarker, entry string) string {
	start := strings.Index(body, startMarker)
	if start >= 0 {
		contentStart := start + len(startMarker)
		if end := strings.Index(body[contentStart:], endMarker); end >= 0 {
			end += contentStart
			return body[:end] + entry + body[end:]
		}
	}

	block := startMarker + entry + endMarker
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}
