// Package mapping holds the vocabulary of atom-atom mapping: matching
// theories and their flags, atom correspondences, the raw and replicated
// solutions, and the contracts of the isomorphism kernel and the cycle
// finder the engine delegates to.
package mapping

import (
	"strings"

	"github.com/turtacn/ReactionMapper/pkg/errors"
)

// Theory selects the matching criteria applied to a job.
type Theory string

const (
	TheoryMin     Theory = "MIN"
	TheoryMax     Theory = "MAX"
	TheoryMixture Theory = "MIXTURE"
	TheoryRings   Theory = "RINGS"
)

// Theories lists the supported theories.
var Theories = []Theory{TheoryMin, TheoryMax, TheoryMixture, TheoryRings}

// ParseTheory resolves s case-insensitively.
func ParseTheory(s string) (Theory, error) {
	t := Theory(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", errors.Newf(errors.ErrCodeTheoryUnsupported, "unsupported theory %q", s).
			WithDetail("expected one of MIN, MAX, MIXTURE, RINGS")
	}
	return t, nil
}

// IsValid reports whether t is one of the supported theories.
func (t Theory) IsValid() bool {
	switch t {
	case TheoryMin, TheoryMax, TheoryMixture, TheoryRings:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (t Theory) String() string { return string(t) }
