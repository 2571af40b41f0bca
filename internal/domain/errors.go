package domain

import "errors"

var (
	// ErrMissingParameter is returned when the quiz request lacks a question field.
	ErrMissingParameter = errors.New("missing question parameter")
	// ErrUnsupportedType is returned for a question type outside the supported set.
	ErrUnsupportedType = errors.New("unsupported question type")
	// ErrMalformedKey indicates a question key without a type/payload separator.
	ErrMalformedKey = errors.New("malformed question key")
	// ErrInvalidMetadata indicates a key payload that does not decode as base64 JSON.
	ErrInvalidMetadata = errors.New("invalid question metadata")
	// ErrInvalidKey indicates decoded metadata missing the field its type requires.
	ErrInvalidKey = errors.New("invalid question key metadata")
	// ErrNoEligibleData is returned when the dataset has no candidates for a question type.
	ErrNoEligibleData = errors.New("no eligible data to generate a question")
	// ErrUpstream covers failed or non-success calls to the country data provider.
	ErrUpstream = errors.New("upstream country data request failed")

	// ErrUserNotFound is returned when a user ID or username resolves to nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned on registration or rename conflicts.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrScoreNotFound is returned when no leaderboard entry matches a query.
	ErrScoreNotFound = errors.New("score entry not found")
	// ErrCityNotFound is returned when the city table has no matching row.
	ErrCityNotFound = errors.New("city not found")
)
