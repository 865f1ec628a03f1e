package portfolio

// CategoryAll selects every project.
const CategoryAll = "all"

// FilterProjects returns the projects in category, in their original order.
// CategoryAll returns a copy of the whole list.
func FilterProjects(list []Project, category string) []Project {
	out := make([]Project, 0, len(list))
	for _, p := range list {
		if category == CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns CategoryAll followed by each distinct project category
// in order of first appearance.
func Categories(list []Project) []string {
	out := []string{CategoryAll}
	seen := map[string]bool{CategoryAll: true}
	for _, p := range list {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
