package schemas

// -- Content Schemas --

// Note is one post as extracted from its detail view. Every field is always
// present; values the page did not render are left empty or zero.
type Note struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	URL      string   `json:"url"`
	Author   string   `json:"author"`
	Likes    int      `json:"likes"`
	Collects int      `json:"collects"`
	Comments int      `json:"comments"`
}

// NoteDetail is a Note opened directly by URL, with its media.
type NoteDetail struct {
	Note
	Images []string `json:"images"`
	Video  string   `json:"video,omitempty"`
}

// Comment is one rendered top-level comment.
type Comment struct {
	Author  string `json:"author"`
	Content string `json:"content"`
	Likes   int    `json:"likes"`
	// Time is the site's display string, e.g. "3天前" or "08-14".
	Time string `json:"time"`
}

// Normalize replaces nil slices with empty ones so the JSON shape is stable.
func (n *Note) Normalize() {
	if n.Tags == nil {
		n.Tags = []string{}
	}
}

// Normalize replaces nil slices with empty ones so the JSON shape is stable.
func (d *NoteDetail) Normalize() {
	d.Note.Normalize()
	if d.Images == nil {
		d.Images = []string{}
	}
}
