// Package docs holds the topics printed by "runbook docs".
package docs

import "fmt"

// Topic is one documentation article.
type Topic struct {
	Name    string // CLI argument
	Title   string
	Summary string // shown in the topic list
	Content string // plain text, no ANSI
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Get looks up a topic by name.
func Get(name string) (Topic, error) {
	for _, t := range topics {
		if t.Name == name {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("unknown topic %q; run 'runbook docs' to list available topics", name)
}
