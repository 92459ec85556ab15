// Package filter narrows lists already fetched through the client.
// Nothing here talks to a backend.
package filter

import (
	"strings"

	"github.com/de-tools/aims/pkg/models/domain"
)

// All is the facet value that disables a filter.
const All = "all"

type AiSystemQuery struct {
	Search     string
	Department string
	RiskLevel  string
}

type PolicyQuery struct {
	Search   string
	Category string
}

type IncidentQuery struct {
	Search string
	Status string
}

func AiSystems(systems []domain.AiSystem, q AiSystemQuery) []domain.AiSystem {
	out := make([]domain.AiSystem, 0, len(systems))
	for _, s := range systems {
		if !facet(q.Department, s.Department) || !facet(q.RiskLevel, string(s.RiskLevel)) {
			continue
		}
		if !matches(q.Search, s.Name, s.Purpose) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func Policies(policies []domain.Policy, q PolicyQuery) []domain.Policy {
	out := make([]domain.Policy, 0, len(policies))
	for _, p := range policies {
		if !facet(q.Category, string(p.Category)) {
			continue
		}
		if !matches(q.Search, p.Name, p.Description) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func Incidents(incidents []domain.Incident, q IncidentQuery) []domain.Incident {
	out := make([]domain.Incident, 0, len(incidents))
	for _, i := range incidents {
		if !facet(q.Status, string(i.Status)) {
			continue
		}
		if !matches(q.Search, i.Title, i.Description, i.System) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Departments lists the distinct departments in first-seen order.
func Departments(systems []domain.AiSystem) []string {
	values := make([]string, 0, len(systems))
	for _, s := range systems {
		values = append(values, s.Department)
	}
	return unique(values)
}

// Categories lists the distinct policy categories in first-seen order.
func Categories(policies []domain.Policy) []string {
	values := make([]string, 0, len(policies))
	for _, p := range policies {
		values = append(values, string(p.Category))
	}
	return unique(values)
}

// Paginate returns the 1-based page of size items. Pages outside the range
// are empty.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// Pages is the number of pages needed to show n items.
func Pages(n, size int) int {
	if size < 1 || n == 0 {
		return 0
	}
	return (n + size - 1) / size
}

func facet(want, got string) bool {
	if want == "" || strings.EqualFold(want, All) {
		return true
	}
	return strings.EqualFold(want, got)
}

func matches(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
