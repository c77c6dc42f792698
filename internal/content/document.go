package content

// Document is the portfolio content record, corresponding to content.json.
// Pointer and slice fields distinguish "absent" from "empty": a nil value
// means the key was missing from the JSON.
type Document struct {
	Name       *string     `json:"name,omitempty"`
	Role       string      `json:"role"`
	Tagline    *string     `json:"tagline,omitempty"`
	Statement  string      `json:"statement,omitempty"`
	About      *About      `json:"about,omitempty"`
	Skills     []Skill     `json:"skills"`
	Experience []Job       `json:"experience"`
	Education  []Education `json:"education"`
	Projects   []Project   `json:"projects"`
	Contact    *Contact    `json:"contact,omitempty"`
}

// About is the about section: an emphasis-formatted heading and a list of
// paragraph columns.
type About struct {
	Heading *string  `json:"heading,omitempty"`
	Columns []string `json:"columns"`
}

// Skill is one entry in the skills grid.
type Skill struct {
	Category string `json:"category"`
	Items    string `json:"items"`
}

// Job is one timeline entry. Entries are listed newest first by convention.
type Job struct {
	Period      string `json:"period"`
	Title       string `json:"title"`
	Org         string `json:"org"`
	Description string `json:"description"`
}

// Education is one degree entry.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// Project is one project card.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Contact is the contact section heading plus its links.
type Contact struct {
	Heading *string `json:"heading,omitempty"`
	Links   []Link  `json:"links"`
}

// Link is a single contact link. Label and Value are displayed as text;
// URL becomes the href.
type Link struct {
	Label string `json:"label"`
	Value string `json:"value"`
	URL   string `json:"url"`
}

// Fallback returns the minimal two-field document used when the content
// cannot be loaded.
func Fallback(name, role string) *Document {
	return &Document{Name: String(name), Role: role}
}

// FullName returns the name, or "" when it is absent.
func (d *Document) FullName() string {
	if d.Name == nil {
		return ""
	}
	return *d.Name
}

// String returns a pointer to s, for building documents in code.
func String(s string) *string { return &s }
