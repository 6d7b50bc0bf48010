package types

type CacheTechDetail struct {
	ID           uint   `json:"id"`
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	SectionTitle string `json:"sectionTitle"`
	Content      string `json:"content"`
	ImageURL     string `json:"imageUrl"`
}
