// Package version captures a display version label from a version-declaring
// file, such as a VERSION constant in a build script or a tag reference in a
// manifest.
package version

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder is the token a transform template uses to mark where the
// captured version goes.
const Placeholder = "{}"

// NotFoundError reports a version pattern that matched nothing.
type NotFoundError struct {
	Pattern string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("version pattern %q did not match", e.Pattern)
}

// Extract applies pattern to data and returns the first match's first
// capture group. When transform is non-empty, every occurrence of the
// "{}" placeholder in it is replaced by the capture ("v{}" turns "1.2.3"
// into "v1.2.3"); otherwise the raw capture is returned.
func Extract(data []byte, pattern, transform string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("compiling version pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return "", fmt.Errorf("version pattern %q has no capture group", pattern)
	}

	match := re.FindSubmatch(data)
	if match == nil {
		return "", &NotFoundError{Pattern: pattern}
	}

	captured := string(match[1])
	if transform == "" {
		return captured, nil
	}

	return strings.ReplaceAll(transform, Placeholder, captured), nil
}
