package query

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/iho/fxreport/internal/domain"
)

// codePattern matches currency codes that are safe to use as column
// name prefixes. Codes come from the catalog, never from user input,
// but nothing reaches SQL text unvalidated.
var codePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,5}$`)

// validateCode checks that a currency code is usable as an identifier.
func validateCode(code string) error {
	if !codePattern.MatchString(code) {
		return fmt.Errorf("%w: invalid currency code %q", domain.ErrUnknownChannel, code)
	}
	return nil
}

// quoteLiteral renders a string literal with single-quote doubling.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// formatDate renders a date predicate value.
func formatDate(t time.Time) string {
	return quoteLiteral(t.Format("2006-01-02"))
}

// dedupChannels removes duplicate identifiers, keeping first-seen
// order. Duplicate identifiers would synthesize duplicate column
// names, which is a build-time error upstream of SQL.
func dedupChannels(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
