package internal

import (
	"fmt"
	"sort"
)

// DemoMolecule is a bundled sample molecule.
type DemoMolecule struct {
	ID, Name, Formula string
	Atoms             string // Molecule string format
}

var demoMolecules = map[string]DemoMolecule{
	"neem_oil_azadirachtin": {
		ID: "neem_oil_azadirachtin", Name: "Azadirachtin (Neem Oil Active)", Formula: "C35H44O16",
		Atoms: "C 0.000 0.000 0.000; H 1.089 0.000 0.000; H -0.363 1.026 0.000; H -0.363 -0.513 0.889; " +
			"C -0.544 -0.513 -1.378; O -1.544 -0.513 -1.378; C 0.456 -0.513 -2.378; H 0.456 0.487 -2.878; " +
			"H 1.456 -0.513 -1.878; H 0.456 -1.313 -3.078; C -2.544 -0.513 -0.378; O -3.544 -0.513 -0.378; " +
			"N -2.044 -0.513 0.622; H -2.544 -0.513 1.522; C -0.644 -0.513 0.622; O -0.144 -0.513 1.622; " +
			"C 0.356 -1.513 -0.378; H 1.356 -1.513 -0.378; H 0.356 -2.513 -0.878",
	},
	"iron_chelate_edta": {
		ID: "iron_chelate_edta", Name: "Iron-EDTA Chelate", Formula: "C10H12FeN2NaO8",
		Atoms: "Fe 0.000 0.000 0.000; N 2.100 0.000 1.500; C 3.200 0.000 0.500; C 4.300 0.000 1.500; " +
			"O 5.400 0.000 1.000; O 4.300 0.000 2.500; C 3.200 1.200 -0.500; C 2.100 1.200 -1.500; " +
			"N 1.000 1.200 -0.500; C 0.000 1.200 -1.500; C -1.000 1.200 -0.500; O -2.000 1.200 -1.000; " +
			"O -1.000 1.200 0.500; C 0.000 2.400 -2.500; C 1.000 2.400 -3.500; N 2.100 2.400 -2.500; " +
			"C 3.200 2.400 -3.500; C 4.300 2.400 -2.500; O 5.400 2.400 -3.000; O 4.300 2.400 -1.500; " +
			"H 2.600 0.500 2.000; H 1.600 -0.500 2.000; H 3.700 -0.500 0.000; H 2.700 0.500 0.000",
	},
	"urea": {
		ID: "urea", Name: "Urea", Formula: "CO(NH2)2",
		Atoms: "C 0.000 0.000 0.000; O 0.000 1.220 0.000; N 1.140 -0.610 0.000; H 1.140 -1.610 0.000; " +
			"H 2.040 -0.110 0.000; N -1.140 -0.610 0.000; H -1.140 -1.610 0.000; H -2.040 -0.110 0.000",
	},
	"potassium_chloride": {
		ID: "potassium_chloride", Name: "Potassium Chloride", Formula: "KCl",
		Atoms: "K 0.000 0.000 0.000; Cl 2.667 0.000 0.000",
	},
	"caffeine": {
		ID: "caffeine", Name: "Caffeine", Formula: "C8H10N4O2",
		Atoms: "C 0.000 0.000 0.000; N 1.350 0.000 0.000; C 2.050 1.200 0.000; N 3.400 1.200 0.000; " +
			"C 4.100 0.000 0.000; C 3.400 -1.200 0.000; N 2.050 -1.200 0.000; C 1.350 -2.400 0.000; " +
			"O 2.050 -3.600 0.000; N 0.000 -2.400 0.000; C -0.700 -1.200 0.000; O -2.050 -1.200 0.000; " +
			"H 1.550 2.100 0.000; C 5.450 0.000 0.000; H 5.950 0.900 0.000; H 5.950 -0.900 0.000; " +
			"H 5.950 0.000 0.900; C -0.700 -3.600 0.000; H -0.200 -4.500 0.000; H -1.200 -3.600 0.900; " +
			"H -1.200 -3.600 -0.900",
	},
	"pyrethrin_i": {
		ID: "pyrethrin_i", Name: "Pyrethrin I", Formula: "C21H28O3",
		Atoms: "C 0.000 0.000 0.000; C 1.400 0.000 0.000; C 2.100 1.200 0.000; C 1.400 2.400 0.000; " +
			"C 0.000 2.400 0.000; C -0.700 1.200 0.000; O -2.100 1.200 0.000; C -2.800 0.000 0.000; " +
			"O -4.200 0.000 0.000; C -2.100 -1.200 0.000; C -0.700 -1.200 0.000; C 0.000 -2.400 0.000; " +
			"C 1.400 -2.400 0.000; C 2.100 -3.600 0.000; C 3.500 -3.600 0.000; C 4.200 -2.400 0.000; " +
			"C 3.500 -1.200 0.000; C 2.800 0.000 0.000; H 3.100 1.200 0.000; H 1.900 3.300 0.000; " +
			"H 0.500 3.300 0.000; H -2.600 -2.100 0.000; H -0.200 -3.300 0.000; H 1.600 -4.500 0.000; " +
			"H 4.000 -4.500 0.000; H 5.200 -2.400 0.000; H 4.000 -0.300 0.000",
	},
}

// DemoIDs lists the bundled molecules, sorted.
func DemoIDs() []string {
	ids := make([]string, 0, len(demoMolecules))
	for id := range demoMolecules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Demo returns the atoms of a bundled molecule.
func Demo(id string) ([]Atom, DemoMolecule, error) {
	m, ok := demoMolecules[id]
	if !ok {
		return nil, m, fmt.Errorf("unknown demo molecule %q (available: %v)", id, DemoIDs())
	}
	atoms, err := ParseMoleculeString(m.Atoms)
	return atoms, m, err
}
