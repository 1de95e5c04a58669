package model

// Student is read-only catalog data from the remote store.
type Student struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Question carries the display label and scoring weight for one question of a
// named test. Label is canonical: trailing segment of the remote title with
// leading zeros stripped ("03" -> "3").
type Question struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Label      string   `json:"label"`
	Text       string   `json:"text,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Types      []string `json:"types,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Score      float64  `json:"score"`
}

// User is a workspace person, matched against the configured teacher roster.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
