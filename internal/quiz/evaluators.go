package quiz

import (
	"context"
	"fmt"
	"sort"

	"kartografi-service/internal/domain"
)

// candidateNames collects every string a country may be called by.
func candidateNames(country domain.Country) []string {
	names := make([]string, 0, 2+len(country.AltSpellings))
	if country.Name.Common != "" {
		names = append(names, country.Name.Common)
	}
	if country.Name.Official != "" {
		names = append(names, country.Name.Official)
	}
	for _, alt := range country.AltSpellings {
		if alt != "" {
			names = append(names, alt)
		}
	}
	return names
}

func (s *Service) evaluateCountry(ctx context.Context, meta KeyMetadata, answer string) (Evaluation, error) {
	if meta.LanguageCode == "" {
		return Evaluation{}, fmt.Errorf("%w: country question requires a language code", domain.ErrInvalidKey)
	}

	countries, err := s.lookup.ByLanguage(ctx, meta.LanguageCode)
	if err != nil {
		return Evaluation{}, err
	}

	answerNorm := Normalize(answer)
	var matched []string
	for _, country := range countries {
		for _, name := range candidateNames(country) {
			if Normalize(name) == answerNorm {
				display := country.Name.Common
				if display == "" {
					display = country.Name.Official
				}
				matched = append(matched, display)
				break
			}
		}
	}

	if len(matched) > 0 {
		return Evaluation{
			Type:    domain.QuestionCountry,
			Correct: true,
			Info: EvaluationInfo{
				Language: meta.LanguageName,
				Matched:  matched[0],
			},
		}, nil
	}

	acceptable := make([]string, 0, 5)
	for _, country := range countries {
		if len(acceptable) == 5 {
			break
		}
		if country.Name.Common != "" {
			acceptable = append(acceptable, country.Name.Common)
		}
	}

	return Evaluation{
		Type:    domain.QuestionCountry,
		Correct: false,
		Info: EvaluationInfo{
			Language:          meta.LanguageName,
			AcceptableAnswers: acceptable,
		},
	}, nil
}

func (s *Service) evaluateMainCity(ctx context.Context, meta KeyMetadata, answer string) (Evaluation, error) {
	if meta.CCA3 == "" {
		return Evaluation{}, fmt.Errorf("%w: main_city question requires a country code", domain.ErrInvalidKey)
	}

	country, err := s.lookup.ByCode(ctx, meta.CCA3, "name", "capital")
	if err != nil {
		return Evaluation{}, err
	}

	capitals := make([]string, 0, len(country.Capital))
	for _, capital := range country.Capital {
		if capital != "" {
			capitals = append(capitals, capital)
		}
	}

	answerNorm := Normalize(answer)
	correct := false
	for _, capital := range capitals {
		if Normalize(capital) == answerNorm {
			correct = true
			break
		}
	}

	return Evaluation{
		Type:    domain.QuestionMainCity,
		Correct: correct,
		Info: EvaluationInfo{
			Country:  country.Name.Common,
			Capitals: capitals,
		},
	}, nil
}

func (s *Service) evaluateLanguage(ctx context.Context, meta KeyMetadata, answer string) (Evaluation, error) {
	if meta.CCA3 == "" {
		return Evaluation{}, fmt.Errorf("%w: language question requires a country code", domain.ErrInvalidKey)
	}

	country, err := s.lookup.ByCode(ctx, meta.CCA3, "name", "languages")
	if err != nil {
		return Evaluation{}, err
	}

	answerNorm := Normalize(answer)
	correct := false
	names := make([]string, 0, len(country.Languages))
	for code, name := range country.Languages {
		names = append(names, name)
		// Both the ISO code and the display name are accepted.
		if Normalize(code) == answerNorm || Normalize(name) == answerNorm {
			correct = true
		}
	}
	sort.Strings(names)

	return Evaluation{
		Type:    domain.QuestionLanguage,
		Correct: correct,
		Info: EvaluationInfo{
			Country:   country.Name.Common,
			Languages: names,
		},
	}, nil
}

func (s *Service) evaluateFlag(ctx context.Context, meta KeyMetadata, answer string) (Evaluation, error) {
	if meta.CCA3 == "" {
		return Evaluation{}, fmt.Errorf("%w: flag question requires a country code", domain.ErrInvalidKey)
	}

	country, err := s.lookup.ByCode(ctx, meta.CCA3, "name", "altSpellings")
	if err != nil {
		return Evaluation{}, err
	}

	answerNorm := Normalize(answer)
	correct := false
	for _, name := range candidateNames(country) {
		if Normalize(name) == answerNorm {
			correct = true
			break
		}
	}

	return Evaluation{
		Type:    domain.QuestionFlag,
		Correct: correct,
		Info:    EvaluationInfo{Country: country.Name.Common},
	}, nil
}
