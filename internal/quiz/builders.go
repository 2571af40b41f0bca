package quiz

import (
	"context"
	"fmt"

	"kartografi-service/internal/domain"
)

type languageEntry struct {
	code      string
	name      string
	countries map[string]struct{}
}

func (s *Service) buildCountryQuestion(ctx context.Context) (Question, error) {
	countries, err := s.countries.GetAll(ctx)
	if err != nil {
		return Question{}, err
	}

	languages := make(map[string]*languageEntry)
	for _, country := range countries {
		for code, name := range country.Languages {
			entry, ok := languages[code]
			if !ok {
				entry = &languageEntry{code: code, name: name, countries: make(map[string]struct{})}
				languages[code] = entry
			}
			entry.countries[country.Name.Common] = struct{}{}
		}
	}

	eligible := make([]*languageEntry, 0, len(languages))
	for _, entry := range languages {
		if len(entry.countries) > 0 {
			eligible = append(eligible, entry)
		}
	}
	if len(eligible) == 0 {
		return Question{}, domain.ErrNoEligibleData
	}

	choice, err := pickRandom(eligible)
	if err != nil {
		return Question{}, err
	}

	// Wording tells the player whether more than one country qualifies.
	prompt := fmt.Sprintf("Which country has %s as an official language?", choice.name)
	if len(choice.countries) > 1 {
		prompt = fmt.Sprintf("Name a country where %s is an official language.", choice.name)
	}

	key, err := EncodeKey(domain.QuestionCountry, KeyMetadata{
		LanguageCode: choice.code,
		LanguageName: choice.name,
	})
	if err != nil {
		return Question{}, err
	}

	return Question{
		Type:        domain.QuestionCountry,
		Prompt:      prompt,
		QuestionKey: key,
		Data: QuestionData{
			Language:        choice.name,
			PossibleAnswers: len(choice.countries),
		},
	}, nil
}

func (s *Service) buildMainCityQuestion(ctx context.Context) (Question, error) {
	countries, err := s.countries.GetAll(ctx)
	if err != nil {
		return Question{}, err
	}

	eligible := make([]domain.Country, 0, len(countries))
	for _, country := range countries {
		if len(country.Capital) > 0 && country.CCA3 != "" {
			eligible = append(eligible, country)
		}
	}
	if len(eligible) == 0 {
		return Question{}, domain.ErrNoEligibleData
	}

	choice, err := pickRandom(eligible)
	if err != nil {
		return Question{}, err
	}

	key, err := EncodeKey(domain.QuestionMainCity, KeyMetadata{CCA3: choice.CCA3})
	if err != nil {
		return Question{}, err
	}

	return Question{
		Type:        domain.QuestionMainCity,
		Prompt:      fmt.Sprintf("What is the capital city of %s?", choice.Name.Common),
		QuestionKey: key,
		Data:        QuestionData{Country: choice.Name.Common},
	}, nil
}

func (s *Service) buildLanguageQuestion(ctx context.Context) (Question, error) {
	countries, err := s.countries.GetAll(ctx)
	if err != nil {
		return Question{}, err
	}

	eligible := make([]domain.Country, 0, len(countries))
	for _, country := range countries {
		if len(country.Languages) > 0 && country.CCA3 != "" {
			eligible = append(eligible, country)
		}
	}
	if len(eligible) == 0 {
		return Question{}, domain.ErrNoEligibleData
	}

	choice, err := pickRandom(eligible)
	if err != nil {
		return Question{}, err
	}

	key, err := EncodeKey(domain.QuestionLanguage, KeyMetadata{CCA3: choice.CCA3})
	if err != nil {
		return Question{}, err
	}

	return Question{
		Type:        domain.QuestionLanguage,
		Prompt:      fmt.Sprintf("Name an official language of %s.", choice.Name.Common),
		QuestionKey: key,
		Data: QuestionData{
			Country:       choice.Name.Common,
			LanguageCount: len(choice.Languages),
		},
	}, nil
}

func (s *Service) buildFlagQuestion(ctx context.Context) (Question, error) {
	countries, err := s.countries.GetAll(ctx)
	if err != nil {
		return Question{}, err
	}

	eligible := make([]domain.Country, 0, len(countries))
	for _, country := range countries {
		if country.Flags.PNG != "" && country.CCA3 != "" {
			eligible = append(eligible, country)
		}
	}
	if len(eligible) == 0 {
		return Question{}, domain.ErrNoEligibleData
	}

	choice, err := pickRandom(eligible)
	if err != nil {
		return Question{}, err
	}

	key, err := EncodeKey(domain.QuestionFlag, KeyMetadata{CCA3: choice.CCA3})
	if err != nil {
		return Question{}, err
	}

	alt := choice.Flags.Alt
	if alt == "" {
		alt = fmt.Sprintf("Flag of %s", choice.Name.Common)
	}

	return Question{
		Type:        domain.QuestionFlag,
		Prompt:      "Which country does this flag belong to?",
		QuestionKey: key,
		Data: QuestionData{
			FlagURL: choice.Flags.PNG,
			FlagAlt: alt,
		},
	}, nil
}
