package serialization

import "strings"

// DecodeComments returns the non-blank lines of comments.txt in file order
func DecodeComments(data []byte) []string {
	var comments []string
	for _, line := range splitLines(string(data)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		comments = append(comments, line)
	}
	return comments
}

// EncodeComments joins comments one per line with a trailing newline
func EncodeComments(comments []string) []byte {
	if len(comments) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(comments, "\n") + "\n")
}

// AppendComment adds one comment to the existing file content without
// rewriting what is already there
func AppendComment(existing []byte, text string) []byte {
	out := make([]byte, 0, len(existing)+len(text)+2)
	out = append(out, existing...)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	out = append(out, strings.TrimSpace(text)...)
	return append(out, '\n')
}
