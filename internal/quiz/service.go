package quiz

import (
	"context"

	"kartografi-service/internal/domain"
)

// CountrySource yields the full (cached) country dataset.
type CountrySource interface {
	GetAll(ctx context.Context) ([]domain.Country, error)
}

// CountryLookup performs fresh targeted fetches against the upstream API.
// Evaluators use it instead of the bulk cache because the bulk listing does
// not carry alternate spellings.
type CountryLookup interface {
	ByLanguage(ctx context.Context, code string) ([]domain.Country, error)
	ByCode(ctx context.Context, cca3 string, fields ...string) (domain.Country, error)
}

// Question is the payload returned when a question is issued. Data carries
// hint fields only, never the answer.
type Question struct {
	Type        domain.QuestionType `json:"type"`
	Prompt      string              `json:"prompt"`
	QuestionKey string              `json:"questionKey"`
	Data        QuestionData        `json:"data"`
}

// QuestionData holds the per-type hint fields.
type QuestionData struct {
	Language        string `json:"language,omitempty"`
	PossibleAnswers int    `json:"possibleAnswers,omitempty"`
	Country         string `json:"country,omitempty"`
	LanguageCount   int    `json:"languageCount,omitempty"`
	FlagURL         string `json:"flagUrl,omitempty"`
	FlagAlt         string `json:"flagAlt,omitempty"`
}

// Evaluation is the payload returned when an answer is judged.
type Evaluation struct {
	Type    domain.QuestionType `json:"type"`
	Correct bool                `json:"correct"`
	Info    EvaluationInfo      `json:"info"`
}

// EvaluationInfo carries supplementary feedback for the client.
type EvaluationInfo struct {
	Language          string   `json:"language,omitempty"`
	Matched           string   `json:"matched,omitempty"`
	AcceptableAnswers []string `json:"acceptableAnswers,omitempty"`
	Country           string   `json:"country,omitempty"`
	Capitals          []string `json:"capitals,omitempty"`
	Languages         []string `json:"languages,omitempty"`
}

// Service generates quiz questions from the cached country dataset and
// evaluates answers against fresh targeted lookups. It holds no per-question
// state; question identity travels in the encoded key.
type Service struct {
	countries CountrySource
	lookup    CountryLookup
}

func NewService(countries CountrySource, lookup CountryLookup) *Service {
	return &Service{countries: countries, lookup: lookup}
}

// BuildQuestion issues a question of the requested type.
func (s *Service) BuildQuestion(ctx context.Context, typ string) (Question, error) {
	switch domain.QuestionType(typ) {
	case domain.QuestionCountry:
		return s.buildCountryQuestion(ctx)
	case domain.QuestionMainCity:
		return s.buildMainCityQuestion(ctx)
	case domain.QuestionLanguage:
		return s.buildLanguageQuestion(ctx)
	case domain.QuestionFlag:
		return s.buildFlagQuestion(ctx)
	default:
		return Question{}, domain.ErrUnsupportedType
	}
}

// EvaluateAnswer decodes the question key and judges the submitted answer.
func (s *Service) EvaluateAnswer(ctx context.Context, questionKey, answer string) (Evaluation, error) {
	typ, meta, err := DecodeKey(questionKey)
	if err != nil {
		return Evaluation{}, err
	}
	switch typ {
	case domain.QuestionCountry:
		return s.evaluateCountry(ctx, meta, answer)
	case domain.QuestionMainCity:
		return s.evaluateMainCity(ctx, meta, answer)
	case domain.QuestionLanguage:
		return s.evaluateLanguage(ctx, meta, answer)
	case domain.QuestionFlag:
		return s.evaluateFlag(ctx, meta, answer)
	default:
		return Evaluation{}, domain.ErrUnsupportedType
	}
}
