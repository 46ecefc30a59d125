package internal

import (
	"encoding/binary"
	"github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
	"hash/fnv"
	"math"
	"strings"
)

// Atom is a single input atom, in molecule units (Ångström). It is exported for RPC.
type Atom struct {
	Symbol string
	Pos    v3.Vec
}

// Valid reports whether the atom can be drawn (finite coordinates).
func (a Atom) Valid() bool {
	return isFinite(a.Pos.X) && isFinite(a.Pos.Y) && isFinite(a.Pos.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Element holds the display properties of a chemical element.
type Element struct {
	Symbol string
	Name   string
	Color  fauxgl.Color
	Radius float64 // Display radius, in molecule units
}

// DefaultElement is the carbon-like profile used for unknown symbols.
var DefaultElement = Element{Symbol: "?", Name: "Unknown", Color: fauxgl.HexColor("909090"), Radius: 0.38}

var elementTable = map[string]Element{}

func init() {
	for _, e := range []Element{
		{"H", "Hydrogen", fauxgl.HexColor("FFFFFF"), 0.25},
		{"He", "Helium", fauxgl.HexColor("D9FFFF"), 0.28},
		{"Li", "Lithium", fauxgl.HexColor("CC80FF"), 0.50},
		{"B", "Boron", fauxgl.HexColor("FFB5B5"), 0.40},
		{"C", "Carbon", fauxgl.HexColor("909090"), 0.38},
		{"N", "Nitrogen", fauxgl.HexColor("3050F8"), 0.36},
		{"O", "Oxygen", fauxgl.HexColor("FF0D0D"), 0.34},
		{"F", "Fluorine", fauxgl.HexColor("90E050"), 0.32},
		{"Na", "Sodium", fauxgl.HexColor("AB5CF2"), 0.55},
		{"Mg", "Magnesium", fauxgl.HexColor("8AFF00"), 0.50},
		{"Al", "Aluminium", fauxgl.HexColor("BFA6A6"), 0.48},
		{"Si", "Silicon", fauxgl.HexColor("F0C8A0"), 0.46},
		{"P", "Phosphorus", fauxgl.HexColor("FF8000"), 0.46},
		{"S", "Sulfur", fauxgl.HexColor("FFFF30"), 0.46},
		{"Cl", "Chlorine", fauxgl.HexColor("1FF01F"), 0.45},
		{"K", "Potassium", fauxgl.HexColor("8F40D4"), 0.60},
		{"Ca", "Calcium", fauxgl.HexColor("3DFF00"), 0.56},
		{"Fe", "Iron", fauxgl.HexColor("E06633"), 0.50},
		{"Cu", "Copper", fauxgl.HexColor("C88033"), 0.48},
		{"Zn", "Zinc", fauxgl.HexColor("7D80B0"), 0.48},
		{"Br", "Bromine", fauxgl.HexColor("A62929"), 0.50},
		{"I", "Iodine", fauxgl.HexColor("940094"), 0.56},
	} {
		elementTable[e.Symbol] = e
	}
}

// NormalizeSymbol trims and capitalizes an element symbol ("cl " -> "Cl").
func NormalizeSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ""
	}
	return strings.ToUpper(symbol[:1]) + strings.ToLower(symbol[1:])
}

// LookupElement returns the display profile for the symbol (DefaultElement if unknown).
func LookupElement(symbol string) Element {
	if e, ok := elementTable[NormalizeSymbol(symbol)]; ok {
		return e
	}
	return DefaultElement
}

// HashAtoms is the content hash used as the atom-list identity by the derived geometry caches.
func HashAtoms(atoms []Atom) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(atoms)))
	_, _ = h.Write(buf[:])
	for _, a := range atoms {
		_, _ = h.Write([]byte(NormalizeSymbol(a.Symbol)))
		for _, f := range [3]float64{a.Pos.X, a.Pos.Y, a.Pos.Z} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}
