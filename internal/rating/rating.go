// Package rating computes the deterministic 0-100 page quality score.
package rating

import (
	"math"
	"strings"
	"time"

	"github.com/jonesrussell/webscout/internal/urlx"
)

// Vector accumulates (earned, max) score pairs across all applicable
// signals. The final score is 100 * sum(earned) / sum(max).
type Vector struct {
	pairs []pair
}

type pair struct {
	earned float64
	max    float64
}

// Add appends one (earned, max) signal to the vector.
func (v *Vector) Add(earned, max float64) {
	v.pairs = append(v.pairs, pair{earned: earned, max: max})
}

// Score reduces the vector to a 0-100 integer, or 0 when no signal
// contributed a maximum.
func (v *Vector) Score() int {
	var earned, max float64

	for _, p := range v.pairs {
		earned += p.earned
		max += p.max
	}

	if max == 0 {
		return 0
	}

	score := math.Round(100 * earned / max)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}

	return int(score)
}

// PageSignals are the extracted properties that feed the content-signal
// half of the rating.
type PageSignals struct {
	Title           string
	MetaDescription string
	OGDescription   string
	Language        string
	Author          string
	HasTags         bool
	DatePublished   *time.Time
	OGImage         string
}

// Signal weights for the content half of the vector.
const (
	titleMax          = 10.0
	titleWellFormed   = 10.0
	titleDegenerate   = 5.0
	titleTooShort     = 2.0
	descriptionMax    = 5.0
	languageMax       = 5.0
	languageBonus     = 1.0
	authorMax         = 1.0
	tagsMax           = 1.0
	datePublishedMax  = 3.0
	ogImageMax        = 5.0
	degenerateTitle   = 1000
	tooShortTitleRune = 4
	minTitleWords     = 2
)

// AddPageSignals appends the content signals to the vector.
func AddPageSignals(v *Vector, signals PageSignals) {
	addTitleSignal(v, signals.Title)

	if signals.MetaDescription != "" {
		v.Add(descriptionMax, descriptionMax)
	} else {
		v.Add(0, descriptionMax)
	}

	if signals.OGDescription != "" {
		v.Add(descriptionMax, descriptionMax)
	} else {
		v.Add(0, descriptionMax)
	}

	addLanguageSignal(v, signals.Language)

	if signals.Author != "" {
		v.Add(authorMax, authorMax)
	} else {
		v.Add(0, authorMax)
	}

	if signals.HasTags {
		v.Add(tagsMax, tagsMax)
	} else {
		v.Add(0, tagsMax)
	}

	if signals.DatePublished != nil && !signals.DatePublished.IsZero() {
		v.Add(datePublishedMax, datePublishedMax)
	} else {
		v.Add(0, datePublishedMax)
	}

	if signals.OGImage != "" {
		v.Add(ogImageMax, ogImageMax)
	} else {
		v.Add(0, ogImageMax)
	}
}

// addTitleSignal scores the title: full credit for a well-formed title,
// partial credit for degenerate (overlong or single-word) and very
// short ones.
func addTitleSignal(v *Vector, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		v.Add(0, titleMax)
		return
	}

	words := len(strings.Fields(title))

	switch {
	case len(title) > degenerateTitle || words < minTitleWords:
		v.Add(titleDegenerate, titleMax)
	case len(title) < tooShortTitleRune:
		v.Add(titleTooShort, titleMax)
	default:
		v.Add(titleWellFormed, titleMax)
	}
}

// addLanguageSignal scores language presence, with the English bonus
// folded into the earned side.
func addLanguageSignal(v *Vector, language string) {
	if language == "" {
		v.Add(0, languageMax)
		return
	}

	// The English bonus widens both sides, so a non-English page is not
	// penalized for a bonus it cannot earn.
	if strings.Contains(strings.ToLower(language), "en") {
		v.Add(languageMax+languageBonus, languageMax+languageBonus)
		return
	}

	v.Add(languageMax, languageMax)
}

// Link-quality weights.
const (
	schemeMax   = 1.0
	isDomainMax = 1.0
	dotCountMax = 2.0
	lengthMax   = 2.0
	shortURL    = 25
	mediumURL   = 30
)

// AddLinkSignals appends the link-quality heuristics derived from the
// URL itself.
func AddLinkSignals(v *Vector, rawURL string) {
	p, ok := urlx.Parse(rawURL)
	if !ok {
		v.Add(0, schemeMax+isDomainMax+dotCountMax+lengthMax)
		return
	}

	switch strings.ToLower(p.Scheme) {
	case "https", "ftp", "smb":
		v.Add(schemeMax, schemeMax)
	default:
		v.Add(0, schemeMax)
	}

	if urlx.IsDomain(rawURL) {
		v.Add(isDomainMax, isDomainMax)
	} else {
		v.Add(0, isDomainMax)
	}

	addDotCountSignal(v, rawURL, p)
	addLengthSignal(v, rawURL)
}

// addDotCountSignal rewards hosts close to a bare domain: exactly one
// dot beyond the scheme scores full, two dots half.
func addDotCountSignal(v *Vector, rawURL string, p urlx.Parts) {
	beyondScheme := strings.TrimPrefix(rawURL, p.Scheme+p.Separator)
	dots := strings.Count(beyondScheme, ".")

	switch dots {
	case 1:
		v.Add(dotCountMax, dotCountMax)
	case 2:
		v.Add(dotCountMax/2, dotCountMax)
	default:
		v.Add(0, dotCountMax)
	}
}

// addLengthSignal rewards short URLs.
func addLengthSignal(v *Vector, rawURL string) {
	switch {
	case len(rawURL) < shortURL:
		v.Add(lengthMax, lengthMax)
	case len(rawURL) < mediumURL:
		v.Add(lengthMax/2, lengthMax)
	default:
		v.Add(0, lengthMax)
	}
}

// Rate computes the combined page rating for the given signals and URL.
// It is a pure function: identical inputs always yield identical scores.
func Rate(signals PageSignals, rawURL string) int {
	var v Vector

	AddPageSignals(&v, signals)
	AddLinkSignals(&v, rawURL)

	return v.Score()
}
