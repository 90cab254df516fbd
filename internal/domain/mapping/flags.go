package mapping

// MatchFlags are the criteria handed to the kernel.
type MatchFlags struct {
	// BondMatch requires equal bond orders.
	BondMatch bool

	// RingMatch requires ring atoms to map onto ring atoms.
	RingMatch bool

	// AtomTypeMatch requires equal atom types beyond the element symbol.
	AtomTypeMatch bool
}

// FlagsFor returns the flags of theory given whether both graphs of the job
// contain rings.  The second result is false for an unsupported theory.
//
//	theory   bond  ring      atomType
//	MIN      false hasRings  true
//	MAX      false hasRings  true
//	MIXTURE  false hasRings  false
//	RINGS    false hasRings  true
func FlagsFor(theory Theory, hasRings bool) (MatchFlags, bool) {
	switch theory {
	case TheoryMin, TheoryMax, TheoryRings:
		return MatchFlags{BondMatch: false, RingMatch: hasRings, AtomTypeMatch: true}, true
	case TheoryMixture:
		return MatchFlags{BondMatch: false, RingMatch: hasRings, AtomTypeMatch: false}, true
	default:
		return MatchFlags{}, false
	}
}
