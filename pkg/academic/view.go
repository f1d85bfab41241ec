package academic

// Bar is one category of a bar chart
type Bar struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// BarChart is a categorical count chart
type BarChart struct {
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
}

// RankingView pairs the university and faculty publication rankings for a keyword selection
type RankingView struct {
	Keywords     []string  `json:"keywords"`
	Years        YearRange `json:"years"`
	Universities BarChart  `json:"universities"`
	Faculty      BarChart  `json:"faculty"`
}

// CitedTable lists a faculty member's most cited publications
type CitedTable struct {
	Faculty      string        `json:"faculty"`
	Columns      []string      `json:"columns"`
	Publications []Publication `json:"publications"`
}

// ResearchPoint is one university of the research-volume scatter
type ResearchPoint struct {
	University       string `json:"university" bson:"university"`
	FacultyCount     int64  `json:"faculty_count" bson:"facultyCount"`
	KeywordCount     int64  `json:"keyword_count" bson:"uniqueKeywordsCount"`
	PublicationCount int64  `json:"publication_count" bson:"distinctPublicationsCount"`
}

// ScatterView is the research-volume scatter: x = publications, y = faculty, size = keywords
type ScatterView struct {
	Universities []string        `json:"universities,omitempty"`
	Points       []ResearchPoint `json:"points"`
}

// Slice is one faculty member's keyword-relevant citation score
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PieView is the keyword-weighted faculty impact chart
type PieView struct {
	Keywords []string  `json:"keywords"`
	Years    YearRange `json:"years"`
	Slices   []Slice   `json:"slices"`
}

// UniversityDetail is the university information panel
type UniversityDetail struct {
	Name         string `json:"name"`
	PhotoURL     string `json:"photo_url,omitempty"`
	FacultyCount int64  `json:"faculty_count"`
	Notice       string `json:"notice,omitempty"`
}

// FacultyDetail is the faculty information panel
type FacultyDetail struct {
	Name             string `json:"name"`
	PhotoURL         string `json:"photo_url,omitempty"`
	Position         string `json:"position,omitempty"`
	ResearchInterest string `json:"research_interest,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	University       string `json:"university,omitempty"`
	Notice           string `json:"notice,omitempty"`
}

// UniversityResult reports the outcome of a create or update of a university
type UniversityResult struct {
	Action   string `json:"action"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
	// Matched is false when an update found no node with that name
	Matched bool `json:"matched"`
	Created bool `json:"created"`
	// GraphOnly marks that the relational and document stores were not updated
	GraphOnly bool     `json:"graph_only"`
	Notice    string   `json:"notice,omitempty"`
	Options   []string `json:"options,omitempty"`
}

// ReviewsView is the review panel of the selected faculty member
type ReviewsView struct {
	Faculty string   `json:"faculty"`
	Reviews []Review `json:"reviews"`
	Notice  string   `json:"notice,omitempty"`
}

// ReviewResult reports a review submission
type ReviewResult struct {
	Faculty   string `json:"faculty"`
	Token     string `json:"token"`
	Appended  bool   `json:"appended"`
	Duplicate bool   `json:"duplicate"`
	Notice    string `json:"notice,omitempty"`
}

// Catalog holds the dropdown options and year bounds of the dashboard
type Catalog struct {
	Keywords     []string  `json:"keywords"`
	Faculty      []string  `json:"faculty"`
	Universities []string  `json:"universities"`
	Years        YearRange `json:"years"`
}
