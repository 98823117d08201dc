package store

import (
	"context"
	"fmt"
	"strings"
)

// Statement fragments that disqualify an AI-generated query outright,
// checked after the single-SELECT shape test.
var forbiddenFragments = []string{
	"insert", "update", "delete", "drop", "alter", "create",
	"pragma", "attach", "detach", "vacuum", "reindex", "replace",
}

// VetReadOnly checks that an AI-generated query is a single SELECT
// statement with no write or schema verbs. It returns the trimmed query
// or an error; it never rewrites the query beyond trimming.
func VetReadOnly(query string) (string, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(query), ";"))
	if trimmed == "" {
		return "", fmt.Errorf("empty query")
	}
	if strings.Contains(trimmed, ";") {
		return "", fmt.Errorf("multiple statements not allowed")
	}
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "select") && !strings.HasPrefix(lower, "with") {
		return "", fmt.Errorf("only SELECT queries allowed")
	}
	for _, frag := range forbiddenFragments {
		if containsWord(lower, frag) {
			return "", fmt.Errorf("forbidden keyword %q in query", frag)
		}
	}
	return trimmed, nil
}

// containsWord reports whether lower contains frag as a whole word.
func containsWord(lower, frag string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], frag)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(frag)
		beforeOK := start == 0 || !isWordByte(lower[start-1])
		afterOK := end == len(lower) || !isWordByte(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// RawQuery executes a vetted read-only query and returns generic rows,
// capped at limit. Used only for AI-generated queries.
func (s *SQLiteStore) RawQuery(ctx context.Context, query string, limit int) ([]map[string]any, error) {
	vetted, err := VetReadOnly(query)
	if err != nil {
		return nil, fmt.Errorf("vet query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, vetted)
	if err != nil {
		return nil, fmt.Errorf("raw query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}

	var out []map[string]any
	for rows.Next() {
		if limit > 0 && len(out) >= limit {
			break
		}
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan raw row: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
