// Package export turns prompts and the whole catalog into downloadable
// artifacts: markdown, xlsx workbooks, a JSON snapshot, and a
// self-contained interactive HTML document. Content assembly is
// deterministic for fixed inputs; timestamps are always passed in.
package export

import (
	"fmt"
	"strings"
	"time"
)

// Export format identifiers as they appear in CLI flags and
// analytics events.
const (
	FormatMarkdown = "markdown"
	FormatExcel    = "excel"
	FormatJSON     = "json"
	FormatHTML     = "html"
)

// PromptFileName derives an artifact filename from a prompt title:
// whitespace runs become underscores.
func PromptFileName(title, ext string) string {
	return strings.Join(strings.Fields(title), "_") + "." + ext
}

// LibraryFileName names full-catalog artifacts by export date.
func LibraryFileName(exportedAt time.Time, ext string) string {
	return fmt.Sprintf("BizPrompt_Library_%s.%s", exportedAt.Format("2006-01-02"), ext)
}
