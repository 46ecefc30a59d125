package internal

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/deadsy/sdfx/vec/v3"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported molecule format")
	ErrMalformed         = errors.New("malformed molecule")
)

// Format is a molecule file format.
type Format string

const (
	FormatXYZ    Format = "xyz"
	FormatMOL    Format = "mol" // MDL V2000 (also the first record of an SDF file)
	FormatPDB    Format = "pdb"
	FormatString Format = "txt" // "C 0 0 0; H 1.09 0 0"
)

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xyz":
		return FormatXYZ, nil
	case ".mol", ".sdf", ".sd":
		return FormatMOL, nil
	case ".pdb", ".ent":
		return FormatPDB, nil
	case ".txt", ".mols":
		return FormatString, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ParseFile reads a molecule file. Unknown extensions are read as molecule strings.
// The returned id is the file name without extension.
func ParseFile(path string) ([]Atom, string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		format = FormatString
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	atoms, err := Parse(f, format)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return atoms, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), nil
}

// Parse reads a molecule in the given format.
func Parse(r io.Reader, format Format) ([]Atom, error) {
	switch format {
	case FormatXYZ:
		return ParseXYZ(r)
	case FormatMOL:
		return ParseMOL(r)
	case FormatPDB:
		return ParsePDB(r)
	case FormatString:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return ParseMoleculeString(string(b))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func malformed(line int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, line, fmt.Sprintf(format, args...))
}

// parseAtomFields reads "<symbol> <x> <y> <z>" fields.
func parseAtomFields(fields []string) (Atom, error) {
	if len(fields) < 4 {
		return Atom{}, fmt.Errorf("expected symbol and 3 coordinates, got %d fields", len(fields))
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return Atom{}, err
		}
		xyz[i] = f
	}
	return Atom{Symbol: NormalizeSymbol(fields[0]), Pos: v3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
}

// ParseXYZ reads the first frame of an XYZ file: atom count, comment, then one atom per line.
// Lines without a symbol and 3 coordinates are skipped, and a short frame keeps the atoms it has.
func ParseXYZ(r io.Reader) ([]Atom, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, malformed(len(lines)+1, "missing header")
	}
	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || n < 0 {
		return nil, malformed(1, "bad atom count %q", lines[0])
	}
	atoms := make([]Atom, 0, n)
	for i := 2; i < 2+n && i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) < 4 {
			continue
		}
		a, err := parseAtomFields(fields)
		if err != nil {
			return nil, malformed(i+1, "%v", err)
		}
		atoms = append(atoms, a)
	}
	return atoms, nil
}

// ParseMOL reads the atom block of an MDL V2000 molfile (or the first record of an SDF file).
// The bond block is ignored: bonds are always inferred from the coordinates. Short atom lines are
// skipped like in ParseXYZ.
func ParseMOL(r io.Reader) ([]Atom, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 4 {
		return nil, malformed(len(lines), "file too short for a molfile")
	}
	counts := lines[3]
	if strings.Contains(counts, "V3000") {
		return nil, fmt.Errorf("%w: V3000 molfiles", ErrUnsupportedFormat)
	}
	n, err := molCount(counts)
	if err != nil {
		return nil, malformed(4, "bad counts line: %v", err)
	}
	atoms := make([]Atom, 0, n)
	for i := 4; i < 4+n && i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) < 4 {
			continue
		}
		// Atom lines are "x y z symbol ..."
		a, err := parseAtomFields([]string{fields[3], fields[0], fields[1], fields[2]})
		if err != nil {
			return nil, malformed(i+1, "%v", err)
		}
		atoms = append(atoms, a)
	}
	return atoms, nil
}

// molCount reads the atom count: the first 3 columns, which may touch the bond count (e.g. "100120").
func molCount(counts string) (int, error) {
	field := counts
	if len(field) > 3 {
		field = field[:3]
	}
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		fields := strings.Fields(counts)
		if len(fields) == 0 {
			return 0, err
		}
		n, err = strconv.Atoi(fields[0])
	}
	if err == nil && n < 0 {
		err = fmt.Errorf("negative atom count %d", n)
	}
	return n, err
}

// ParsePDB reads the ATOM and HETATM records of a PDB file, up to the first END or ENDMDL.
// Records with unreadable coordinates are skipped.
func ParsePDB(r io.Reader) ([]Atom, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	var atoms []Atom
	skipped := 0
	for _, line := range lines {
		record := strings.TrimSpace(column(line, 0, 6))
		if record == "END" || record == "ENDMDL" {
			break
		}
		if record != "ATOM" && record != "HETATM" {
			continue
		}
		var xyz [3]float64
		if !parseColumns(line, xyz[:]) {
			skipped++
			continue
		}
		symbol := strings.TrimSpace(column(line, 76, 78))
		if symbol == "" { // Old files: derive it from the atom name
			symbol = strings.TrimFunc(column(line, 12, 16), func(r rune) bool { return !unicode.IsLetter(r) })
			if len(symbol) > 1 {
				symbol = symbol[:1]
			}
		}
		atoms = append(atoms, Atom{Symbol: NormalizeSymbol(symbol), Pos: v3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}})
	}
	if len(atoms) == 0 {
		return nil, malformed(len(lines), "no readable ATOM or HETATM records (%d skipped)", skipped)
	}
	return atoms, nil
}

// parseColumns reads the fixed-width PDB coordinates into xyz.
func parseColumns(line string, xyz []float64) bool {
	for k := range xyz {
		f, err := strconv.ParseFloat(strings.TrimSpace(column(line, 30+8*k, 38+8*k)), 64)
		if err != nil {
			return false
		}
		xyz[k] = f
	}
	return true
}

// column is the [from, to) byte range of a fixed-column line, clipped to its length.
func column(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return line[from:to]
}

// ParseMoleculeString reads the compact "C 0 0 0; H 1.09 0 0" format (';' or newline separated).
func ParseMoleculeString(s string) ([]Atom, error) {
	var atoms []Atom
	entries := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' })
	for i, entry := range entries {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		a, err := parseAtomFields(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: atom %d: %v", ErrMalformed, i+1, err)
		}
		atoms = append(atoms, a)
	}
	return atoms, nil
}
