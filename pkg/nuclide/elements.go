package nuclide

import "strconv"

var elementSymbols = [...]string{
	"n",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// MaxZ is the highest charge number with a known element symbol.
const MaxZ = len(elementSymbols) - 1

// Symbol returns the element symbol for z, or "Z<z>" outside the periodic table.
func Symbol(z int) string {
	if z < 0 || z > MaxZ {
		return "Z" + strconv.Itoa(z)
	}
	return elementSymbols[z]
}

// LookupSymbol returns the charge number for an element symbol.
func LookupSymbol(symbol string) (int, bool) {
	for z, s := range elementSymbols {
		if s == symbol {
			return z, true
		}
	}
	return 0, false
}
