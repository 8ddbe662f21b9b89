package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// MostSimilar returns the candidate with the highest Jaro-Winkler similarity
// to `name` (compared normalized), ok is false when no candidate reaches
// `threshold`.
func MostSimilar(name string, candidates []string, threshold float64) (best string, similarity float64, ok bool) {
	target := NormalizeName(name)
	for _, c := range candidates {
		sim := matchr.JaroWinkler(target, NormalizeName(c), false)
		if sim > similarity {
			similarity = sim
			best = c
		}
	}
	if similarity < threshold || best == "" {
		return "", similarity, false
	}
	return best, similarity, true
}
