package quiz

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"kartografi-service/internal/domain"
)

// KeyMetadata is the payload carried inside a question key. Country questions
// carry the language pair; the other three types carry the country code. The
// key is the only state shared between issuing a question and checking its
// answer, so it must stay decodable for the lifetime of a deployment.
type KeyMetadata struct {
	LanguageCode string `json:"languageCode,omitempty"`
	LanguageName string `json:"languageName,omitempty"`
	CCA3         string `json:"cca3,omitempty"`
}

// EncodeKey serializes a question key as "<type>|<base64url JSON>". The result
// is URL and JSON safe and round-trips through DecodeKey.
func EncodeKey(typ domain.QuestionType, meta KeyMetadata) (string, error) {
	payload, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("encode question key: %w", err)
	}
	return string(typ) + "|" + base64.RawURLEncoding.EncodeToString(payload), nil
}

// DecodeKey parses a question key back into its type and metadata.
func DecodeKey(raw string) (domain.QuestionType, KeyMetadata, error) {
	typePart, payload, ok := strings.Cut(raw, "|")
	if !ok {
		return "", KeyMetadata{}, domain.ErrMalformedKey
	}
	if !domain.SupportedQuestionType(typePart) {
		return "", KeyMetadata{}, fmt.Errorf("%w %q", domain.ErrUnsupportedType, typePart)
	}
	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", KeyMetadata{}, domain.ErrInvalidMetadata
	}
	var meta KeyMetadata
	if err := json.Unmarshal(decoded, &meta); err != nil {
		return "", KeyMetadata{}, domain.ErrInvalidMetadata
	}
	return domain.QuestionType(typePart), meta, nil
}
