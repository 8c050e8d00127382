package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed reports content from which no JSON value of the wanted
// shape could be recovered.
var ErrParseFailed = errors.New("no parsable JSON in output")

var fence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Parse decodes T from content. It accepts, in order: the whole content as
// JSON, the first fenced code block, then the last line that begins with
// '{' or '['. The last form covers scripts that log before printing their
// result.
func Parse[T any](content string) (T, error) {
	var out T

	for _, candidate := range candidates(content) {
		if err := json.Unmarshal([]byte(candidate), &out); err == nil {
			return out, nil
		}
		out = *new(T)
	}

	return out, fmt.Errorf("%w: %s", ErrParseFailed, truncate(content, 200))
}

func candidates(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	list := []string{content}

	if m := fence.FindStringSubmatch(content); m != nil {
		list = append(list, m[1])
	}

	lines := strings.Split(content, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[") {
			list = append(list, line)
			break
		}
	}

	return list
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
