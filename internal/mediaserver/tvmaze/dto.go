package tvmaze

// Image holds artwork URLs. The API sends null when no artwork exists.
type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// Rating wraps the average community rating (null when unrated)
type Rating struct {
	Average *float64 `json:"average"`
}

// Show is the /shows/{id} payload and the "show" member of a search hit
type Show struct {
	ID        int      `json:"id"`
	URL       string   `json:"url,omitempty"`
	Name      string   `json:"name"`
	Type      string   `json:"type,omitempty"`
	Language  string   `json:"language,omitempty"`
	Genres    []string `json:"genres"`
	Status    string   `json:"status,omitempty"`
	Runtime   *int     `json:"runtime"`
	Premiered string   `json:"premiered,omitempty"` // YYYY-MM-DD
	Rating    Rating   `json:"rating"`
	Image     *Image   `json:"image"`
	Summary   string   `json:"summary,omitempty"` // HTML
}

// Episode is one element of /shows/{id}/episodes
type Episode struct {
	ID      int    `json:"id"`
	URL     string `json:"url,omitempty"`
	Name    string `json:"name"`
	Season  int    `json:"season"`
	Number  *int   `json:"number"` // null for specials
	Airdate string `json:"airdate,omitempty"`
	Runtime *int   `json:"runtime"`
	Summary string `json:"summary,omitempty"` // HTML
}

// Person is the "person" member of a cast entry
type Person struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Birthday string `json:"birthday,omitempty"` // YYYY-MM-DD or null
	Image    *Image `json:"image"`
}

// Character is the "character" member of a cast entry
type Character struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is one element of /shows/{id}/cast
type CastMember struct {
	Person    Person    `json:"person"`
	Character Character `json:"character"`
}

// SearchHit is one element of /search/shows
type SearchHit struct {
	Score float64 `json:"score"`
	Show  Show    `json:"show"`
}
