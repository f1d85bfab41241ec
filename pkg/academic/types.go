package academic

// YearRange is an inclusive publication year filter
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether year lies within the range
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

// Keyword is a research topic name, unique across all stores
type Keyword struct {
	Name string `json:"name" bson:"name"`
}

// Review is a free-text review with a 1..5 rating stored on a faculty document
type Review struct {
	Text   string `json:"text" bson:"review-text"`
	Rating int    `json:"rating" bson:"review-rating"`
}

// Affiliation is the university reference embedded in a faculty document
type Affiliation struct {
	Name     string `json:"name" bson:"name"`
	PhotoURL string `json:"photo_url,omitempty" bson:"photoUrl,omitempty"`
}

// Faculty represents a faculty member as held by the document store
type Faculty struct {
	ID               interface{}      `json:"id" bson:"_id"`
	Name             string           `json:"name" bson:"name"`
	Position         string           `json:"position" bson:"position"`
	ResearchInterest string           `json:"research_interest" bson:"researchInterest"`
	Email            string           `json:"email" bson:"email"`
	Phone            string           `json:"phone" bson:"phone"`
	PhotoURL         string           `json:"photo_url" bson:"photoUrl"`
	Affiliation      Affiliation      `json:"affiliation" bson:"affiliation"`
	Keywords         []FacultyKeyword `json:"keywords,omitempty" bson:"keywords,omitempty"`
	Publications     []interface{}    `json:"-" bson:"publications,omitempty"`
	Reviews          []Review         `json:"reviews,omitempty" bson:"reviews,omitempty"`
}

// FacultyKeyword is a keyword reference with its relevance score
type FacultyKeyword struct {
	Name  string  `json:"name" bson:"name"`
	Score float64 `json:"score" bson:"score"`
}

// University is keyed by name in every store
type University struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

// Publication is a paper with its citation count
type Publication struct {
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Citations int64  `json:"citations"`
}
