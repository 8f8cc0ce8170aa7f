// Package detector identifies the language of fetched book text. The result
// is recorded with each analysis for provenance; tokenization itself stays
// ASCII regardless of what is detected.
package detector

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// candidates covers the languages common on the public book archive.
var candidates = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Latin,
}

// sampleLimit bounds how much text the detector looks at. Book bodies run to
// megabytes; a prefix is plenty for a confident call.
const sampleLimit = 4096

// Detector wraps a lingua language detector.
type Detector struct {
	inner lingua.LanguageDetector
}

// New builds a Detector over the candidate language set. Building loads the
// language models, so callers should reuse one Detector.
func New() *Detector {
	return &Detector{
		inner: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code of the text's language, or "" when the
// detector cannot make a call (empty or inconclusive text).
func (d *Detector) Detect(text string) string {
	if len(text) > sampleLimit {
		text = text[:sampleLimit]
	}
	if strings.TrimSpace(text) == "" {
		return ""
	}

	lang, ok := d.inner.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
