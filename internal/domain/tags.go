package domain

import "strings"

// DedupeTags trims each tag, drops blanks and removes duplicates while
// keeping the first occurrence of each tag in its original position.
func DedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}

// SplitTags splits a comma separated list such as "home, errands".
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return DedupeTags(strings.Split(s, ","))
}

// RemoveTags returns tags without any of the given values.
func RemoveTags(tags []string, remove ...string) []string {
	drop := make(map[string]struct{}, len(remove))
	for _, r := range remove {
		drop[strings.TrimSpace(r)] = struct{}{}
	}
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := drop[tag]; !ok {
			result = append(result, tag)
		}
	}
	return result
}
