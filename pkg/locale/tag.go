package locale

import "golang.org/x/text/language"

// Tag identifies one of the display languages the dashboard ships
// translations for. The set is closed; anything else resolves to DefaultTag.
type Tag string

const (
	TagEnglish Tag = "en"
	TagHindi   Tag = "hi"
	TagKannada Tag = "kn"
)

// DefaultTag is the fallback for empty, unknown, or malformed language input.
const DefaultTag = TagEnglish

var supported = []Tag{TagEnglish, TagHindi, TagKannada}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Hindi,
	language.Kannada,
})

// ParseTag resolves arbitrary language input ("en", "hi-IN", a persisted
// preference, garbage) to a supported Tag. Regional variants match their
// base language; everything unrecognized falls back to DefaultTag.
func ParseTag(s string) Tag {
	tag, _ := MatchTag(s)
	return tag
}

// MatchTag is ParseTag plus a report of whether the input actually matched a
// supported language instead of falling back.
func MatchTag(s string) (Tag, bool) {
	if s == "" {
		return DefaultTag, false
	}

	parsed, err := language.Parse(s)
	if err != nil {
		return DefaultTag, false
	}

	_, index, conf := matcher.Match(parsed)
	if conf < language.High {
		return DefaultTag, false
	}

	// The matcher resolves related languages (Marathi to Hindi) at High
	// confidence; a real match needs the base language to agree too.
	matched := supported[index]
	parsedBase, _ := parsed.Base()
	matchedBase, _ := matched.Language().Base()
	if parsedBase != matchedBase {
		return DefaultTag, false
	}

	return matched, true
}

// SupportedTags lists the closed set of display languages.
func SupportedTags() []Tag {
	out := make([]Tag, len(supported))
	copy(out, supported)
	return out
}

func (t Tag) String() string {
	return string(t)
}

// Language maps the Tag to its x/text locale.
func (t Tag) Language() language.Tag {
	switch t {
	case TagHindi:
		return language.Hindi
	case TagKannada:
		return language.Kannada
	default:
		return language.English
	}
}
