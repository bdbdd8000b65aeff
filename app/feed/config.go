package feed

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultLimit        = 20
	DefaultDestination  = "feed.xml"
	DefaultExcerptField = "excerpt"
)

type Config struct {
	Collection     string
	Feed           *Mapping
	Limit          int
	Destination    string
	ExcerptField   string
	LinkPrecedence []LinkSource
	Verify         bool
}

// ResolveConfig validates raw feed options and applies defaults.
//
// Recognised keys: collection and feed (required), limit, destination,
// excerpt (or excerpt_field), link_precedence and verify.
func ResolveConfig(raw *Mapping) (Config, error) {
	cfg := Config{
		Limit:          DefaultLimit,
		Destination:    DefaultDestination,
		ExcerptField:   DefaultExcerptField,
		LinkPrecedence: DefaultLinkPrecedence,
	}

	collection, ok := raw.Get("collection")
	if !ok {
		return Config{}, &MissingRequiredOptionError{Option: "collection"}
	}
	skeleton, ok := raw.Get("feed")
	if !ok {
		return Config{}, &MissingRequiredOptionError{Option: "feed"}
	}

	var err error
	if cfg.Collection, err = scalarOption("collection", collection); err != nil {
		return Config{}, err
	}
	if cfg.Feed, ok = skeleton.(*Mapping); !ok {
		return Config{}, fmt.Errorf("feed: expected a mapping: %w", ErrInvalidOption)
	}
	if err := checkElementNames("feed", cfg.Feed); err != nil {
		return Config{}, err
	}

	if v, ok := raw.Get("limit"); ok {
		s, err := scalarOption("limit", v)
		if err != nil {
			return Config{}, err
		}
		if cfg.Limit, err = strconv.Atoi(s); err != nil || cfg.Limit < 0 {
			return Config{}, fmt.Errorf("limit: %q is not a non-negative integer: %w", s, ErrInvalidOption)
		}
	}

	if v, ok := raw.Get("destination"); ok {
		if cfg.Destination, err = scalarOption("destination", v); err != nil {
			return Config{}, err
		}
	}

	for _, key := range []string{"excerpt", "excerpt_field"} {
		if v, ok := raw.Get(key); ok {
			if cfg.ExcerptField, err = scalarOption(key, v); err != nil {
				return Config{}, err
			}
		}
	}

	if v, ok := raw.Get("link_precedence"); ok {
		s, err := scalarOption("link_precedence", v)
		if err != nil {
			return Config{}, err
		}
		if cfg.LinkPrecedence, err = ParseLinkPrecedence(s); err != nil {
			return Config{}, err
		}
	}

	if v, ok := raw.Get("verify"); ok {
		s, err := scalarOption("verify", v)
		if err != nil {
			return Config{}, err
		}
		if cfg.Verify, err = strconv.ParseBool(s); err != nil {
			return Config{}, fmt.Errorf("verify: %q is not a boolean: %w", s, ErrInvalidOption)
		}
	}

	return cfg, nil
}

func scalarOption(name string, v Value) (string, error) {
	s, ok := v.(Scalar)
	if !ok {
		return "", fmt.Errorf("%s: expected a scalar: %w", name, ErrInvalidOption)
	}
	return string(s), nil
}

// checkElementNames rejects skeleton keys that cannot be used as element names.
func checkElementNames(at string, m *Mapping) error {
	for key, value := range m.All() {
		if !isElementName(key) {
			return fmt.Errorf("%s: %q is not a valid element name: %w", at, key, ErrInvalidOption)
		}
		if child, ok := value.(*Mapping); ok {
			if err := checkElementNames(at+"."+key, child); err != nil {
				return err
			}
		}
	}
	return nil
}

func isElementName(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && (r == '-' || r == '.' || r == ':' || unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
