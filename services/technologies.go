package services

import "strings"

// SplitTechnologies derives the ordered technology list from the
// comma-separated admin input: split on commas, trim each segment,
// discard empty segments, keep the input order.
// "React, , Node.js,  " -> ["React", "Node.js"].
func SplitTechnologies(input string) []string {
	parts := strings.Split(input, ",")
	technologies := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		technologies = append(technologies, trimmed)
	}
	return technologies
}

// JoinTechnologies renders a technology list back into the form input
// format used by the admin edit page.
func JoinTechnologies(technologies []string) string {
	return strings.Join(technologies, ", ")
}
