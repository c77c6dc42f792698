package content

import (
	"encoding/json"
	"fmt"
	"os"
)

// Starter returns a complete example document for a new site.
func Starter(name, role string) *Document {
	return &Document{
		Name:      String(name),
		Role:      role,
		Tagline:   String("Building careful software\nfor curious people."),
		Statement: "I design and build tools that make complex work feel simple.",
		About: &About{
			Heading: String("A little\n*about* me"),
			Columns: []string{
				"Write a few sentences about where you come from and what you care about.",
				"Use a second column for what you are working on now.",
			},
		},
		Skills: []Skill{
			{Category: "Languages", Items: "Go, TypeScript, SQL"},
			{Category: "Tools", Items: "Linux, Docker, Git"},
		},
		Experience: []Job{
			{Period: "2022 &ndash; now", Title: "Engineer", Org: "Company", Description: "What you built and why it mattered."},
		},
		Education: []Education{
			{Degree: "B.Sc. Computer Science", School: "University", Year: "2021"},
		},
		Projects: []Project{
			{Title: "First project", Description: "One paragraph about the problem and the result.", Tags: []string{"go", "web"}},
			{Title: "Second project", Description: "Another paragraph.", Tags: []string{"data"}},
		},
		Contact: &Contact{
			Heading: String("Let's\n*talk*"),
			Links: []Link{
				{Label: "Email", Value: "you@example.com", URL: "mailto:you@example.com"},
				{Label: "GitHub", Value: "github.com/you", URL: "https://github.com/you"},
			},
		},
	}
}

// WriteFile writes d as indented JSON to path.
func (d *Document) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling content: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing content to %s: %w", path, err)
	}
	return nil
}
