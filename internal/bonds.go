package internal

// BondOrder is the multiplicity of a bond.
type BondOrder int

const (
	Single BondOrder = iota + 1
	Double
	Triple
)

func (o BondOrder) String() string {
	switch o {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	}
	return "none"
}

// Bond connects atoms I < J. Derived from raw coordinates only.
type Bond struct {
	I, J     int
	Distance float64
	Order    BondOrder
}

// OrderTiers gives the distance thresholds for one element pair: below Triple is triple, below Double
// is double, anything else single. A zero threshold disables that tier.
type OrderTiers struct {
	Triple, Double float64
}

// BondRules is the (hand-tuned) bond inference table.
type BondRules struct {
	Tolerance             float64 // Pairs farther than Tolerance*(rA+rB) are not bonded
	DefaultCovalentRadius float64
	CovalentRadii         map[string]float64
	Tiers                 map[[2]string]OrderTiers // Keyed by the sorted symbol pair
	// Ratio test against the expected single-bond length (rA+rB) for pairs without tiers
	GenericTriple, GenericDouble float64
}

// DefaultBondRules returns the built-in thresholds.
func DefaultBondRules() *BondRules {
	return &BondRules{
		Tolerance:             1.3,
		DefaultCovalentRadius: 0.77,
		CovalentRadii: map[string]float64{
			"H": 0.31, "B": 0.84, "C": 0.76, "N": 0.71, "O": 0.66, "F": 0.57,
			"Na": 1.66, "Mg": 1.41, "Al": 1.21, "Si": 1.11, "P": 1.07, "S": 1.05, "Cl": 1.02,
			"K": 2.03, "Ca": 1.76, "Fe": 1.32, "Cu": 1.32, "Zn": 1.22, "Br": 1.20, "I": 1.39,
		},
		Tiers: map[[2]string]OrderTiers{
			{"C", "C"}: {Triple: 1.25, Double: 1.40},
			{"C", "N"}: {Triple: 1.22, Double: 1.35},
			{"N", "N"}: {Triple: 1.18, Double: 1.30},
			{"C", "O"}: {Double: 1.30},
			{"O", "O"}: {Double: 1.30},
		},
		GenericTriple: 0.85,
		GenericDouble: 0.95,
	}
}

func (r *BondRules) covalentRadius(symbol string) float64 {
	if v, ok := r.CovalentRadii[symbol]; ok {
		return v
	}
	return r.DefaultCovalentRadius
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Classify returns the bond order between two elements at the given distance, or 0 if they are not bonded.
// The result does not depend on the argument order.
func (r *BondRules) Classify(symbolA, symbolB string, distance float64) BondOrder {
	a, b := NormalizeSymbol(symbolA), NormalizeSymbol(symbolB)
	expected := r.covalentRadius(a) + r.covalentRadius(b)
	if !(distance <= r.Tolerance*expected) { // Also rejects NaN
		return 0
	}
	if a == "H" || b == "H" {
		return Single
	}
	if tiers, ok := r.Tiers[pairKey(a, b)]; ok {
		switch {
		case distance < tiers.Triple:
			return Triple
		case distance < tiers.Double:
			return Double
		}
		return Single
	}
	switch ratio := distance / expected; {
	case ratio < r.GenericTriple:
		return Triple
	case ratio < r.GenericDouble:
		return Double
	}
	return Single
}

// InferBonds finds all bonded pairs in the atom list (raw, untransformed coordinates).
func InferBonds(atoms []Atom, rules *BondRules) []Bond {
	if rules == nil {
		rules = DefaultBondRules()
	}
	var bonds []Bond
	for i := 0; i < len(atoms); i++ {
		if !atoms[i].Valid() {
			continue
		}
		for j := i + 1; j < len(atoms); j++ {
			if !atoms[j].Valid() {
				continue
			}
			d := atoms[i].Pos.Sub(atoms[j].Pos).Length()
			if order := rules.Classify(atoms[i].Symbol, atoms[j].Symbol, d); order != 0 {
				bonds = append(bonds, Bond{I: i, J: j, Distance: d, Order: order})
			}
		}
	}
	return bonds
}

// NeighborCounts counts, for each atom, the other atoms closer than radius (ambient occlusion proxy).
func NeighborCounts(atoms []Atom, radius float64) []int {
	counts := make([]int, len(atoms))
	for i := 0; i < len(atoms); i++ {
		if !atoms[i].Valid() {
			continue
		}
		for j := i + 1; j < len(atoms); j++ {
			if atoms[j].Valid() && atoms[i].Pos.Sub(atoms[j].Pos).Length() < radius {
				counts[i]++
				counts[j]++
			}
		}
	}
	return counts
}
