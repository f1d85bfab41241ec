package query

type QueryType string

const (
	Match  QueryType = "MATCH"
	Create QueryType = "CREATE"
	Update QueryType = "UPDATE"
)

// ImpactLimit caps the keyword-weighted faculty impact chart
const ImpactLimit = 10

// Cypher is a parameterized graph statement
type Cypher struct {
	Type   QueryType              `json:"type"`
	Text   string                 `json:"text"`
	Params map[string]interface{} `json:"params"`
	// Database overrides the store's default logical database when set
	Database string `json:"database,omitempty"`
}

// Writes reports whether the statement mutates the graph
func (c Cypher) Writes() bool {
	return c.Type == Create || c.Type == Update
}

// KeywordImpact sums citation count times keyword score per faculty member
func KeywordImpact(keywords []string, minYear, maxYear int) Cypher {
	return Cypher{
		Type: Match,
		Text: `WITH $selected_keywords AS keywords
MATCH (f:FACULTY)--(p:PUBLICATION)-[l:LABEL_BY]-(k:KEYWORD)
WHERE k.name IN keywords
AND p.year >= $min_year AND p.year <= $max_year
RETURN f.name AS name, SUM(DISTINCT p.numCitations * l.score) AS krc
ORDER BY krc DESC
LIMIT $limit`,
		Params: map[string]interface{}{
			"selected_keywords": keywords,
			"min_year":          minYear,
			"max_year":          maxYear,
			"limit":             ImpactLimit,
		},
	}
}

// UniversityByName looks up an institute node
func UniversityByName(name string) Cypher {
	return Cypher{
		Type:   Match,
		Text:   `MATCH (i:INSTITUTE {name: $name}) RETURN i.name AS name, i.photoUrl AS photoUrl`,
		Params: map[string]interface{}{"name": name},
	}
}

// UniversityFacultyCount counts faculty connected to an institute
func UniversityFacultyCount(name string) Cypher {
	return Cypher{
		Type:   Match,
		Text:   `MATCH (f:FACULTY)--(i:INSTITUTE {name: $name}) RETURN count(f) AS total`,
		Params: map[string]interface{}{"name": name},
	}
}

// SetUniversityPhoto updates the photo of an existing institute; absent names match nothing
func SetUniversityPhoto(name, url string) Cypher {
	return Cypher{
		Type:   Update,
		Text:   `MATCH (i:INSTITUTE {name: $name}) SET i.photoUrl = $url RETURN i.name AS name`,
		Params: map[string]interface{}{"name": name, "url": url},
	}
}

// CreateUniversity inserts an institute; the name uniqueness constraint may reject it
func CreateUniversity(name, url string) Cypher {
	return Cypher{
		Type:   Create,
		Text:   `CREATE (i:INSTITUTE {name: $name, photoUrl: $url}) RETURN i.name AS name`,
		Params: map[string]interface{}{"name": name, "url": url},
	}
}
