package ats

import "strings"

// Dictionary holds the term lists matched against the resume text.
type Dictionary struct {
	Keywords    []string
	ActionVerbs []string
}

// DefaultDictionary returns the hard skill keywords and action verbs used in production.
func DefaultDictionary() Dictionary {
	return Dictionary{
		Keywords: []string{
			"javascript", "typescript", "python", "java", "go", "golang", "rust", "c++", "c#", "ruby",
			"php", "kotlin", "swift", "scala", "sql", "nosql", "html", "css",
			"react", "angular", "vue", "next.js", "node.js", "express", "django", "flask", "spring",
			"rails", "graphql", "rest", "grpc", "microservices",
			"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "kafka", "rabbitmq",
			"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "jenkins",
			"ci/cd", "git", "linux", "agile", "scrum", "jira",
			"machine learning", "deep learning", "tensorflow", "pytorch", "pandas", "data analysis",
			"tableau", "power bi", "excel", "figma", "seo",
		},
		ActionVerbs: []string{
			"achieved", "administered", "analyzed", "architected", "automated", "built", "collaborated",
			"coordinated", "created", "delivered", "designed", "developed", "drove", "enhanced",
			"established", "executed", "expanded", "generated", "grew", "implemented", "improved",
			"increased", "initiated", "integrated", "launched", "led", "managed", "mentored",
			"migrated", "negotiated", "optimized", "orchestrated", "organized", "oversaw", "pioneered",
			"reduced", "redesigned", "resolved", "scaled", "spearheaded", "streamlined", "supervised",
			"trained", "transformed",
		},
	}
}

// normalize lowercases, trims and de-duplicates terms, keeping first-seen order.
func normalize(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
