package domain

import "time"

// QuestionType tags the four supported quiz question kinds.
type QuestionType string

const (
	QuestionCountry  QuestionType = "country"
	QuestionMainCity QuestionType = "main_city"
	QuestionLanguage QuestionType = "language"
	QuestionFlag     QuestionType = "flag"
)

// SupportedQuestionType reports whether raw names one of the four question kinds.
func SupportedQuestionType(raw string) bool {
	switch QuestionType(raw) {
	case QuestionCountry, QuestionMainCity, QuestionLanguage, QuestionFlag:
		return true
	}
	return false
}

// CountryName holds the common and official names of a country.
type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// Flags holds the flag image references for a country.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt"`
}

// Country is a record from the upstream country dataset. The bulk listing
// omits AltSpellings; targeted lookups fill in whichever fields were requested.
type Country struct {
	Name         CountryName       `json:"name"`
	Capital      []string          `json:"capital"`
	Languages    map[string]string `json:"languages"`
	Flags        Flags             `json:"flags"`
	CCA3         string            `json:"cca3"`
	AltSpellings []string          `json:"altSpellings"`
}

// User is a registered player.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password" json:"-"`
	Points       int       `bson:"points" json:"points"`
	SloPoints    int       `bson:"slo_points" json:"slo_points"`
	QuizPoints   int       `bson:"quiz_points" json:"quiz_points"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// ScoreEntry is a player's best score for one game type (and continent, for
// the countries game).
type ScoreEntry struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	Username    string    `bson:"username" json:"username"`
	GameType    string    `bson:"gameType" json:"gameType"`
	Continent   string    `bson:"continent,omitempty" json:"continent,omitempty"`
	Score       int       `bson:"score" json:"score"`
	MaxScore    int       `bson:"maxScore" json:"maxScore"`
	Percentage  float64   `bson:"percentage" json:"percentage"`
	CompletedAt time.Time `bson:"completedAt" json:"completedAt"`
}

// City is one row of the city coordinate table.
type City struct {
	ID   string  `bson:"_id,omitempty" json:"id"`
	Name string  `bson:"city" json:"city"`
	Lat  float64 `bson:"lat" json:"lat"`
	Lng  float64 `bson:"lng" json:"lng"`
}
