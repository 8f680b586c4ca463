package comfort

// Article is a blog post as rendered on the public site. Excerpt is
// derived from the full body at mapping time and is never longer than
// the excerpt cap plus the ellipsis marker.
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Image    string `json:"image"`
}
