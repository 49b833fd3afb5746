package font

import "strings"

// Name is a parsed font name
type Name struct {
	// Base is the font name without its subset tag
	Base string

	// Subset is true when the name carried a subset tag ("ABCDEF+")
	Subset bool

	Bold   bool
	Italic bool
}

// boldMarkers are weight keywords that render as bold
var boldMarkers = []string{"bold", "black", "heavy", "semibold", "demibold", "extrabold", "ultrabold"}

// italicMarkers are slant keywords
var italicMarkers = []string{"italic", "oblique", "slanted", "kursiv"}

// Parse splits a PDF font name into its base name and style traits
func Parse(name string) Name {
	n := Name{Base: name}
	if isSubsetFont(name) {
		n.Base = name[7:]
		n.Subset = true
	}

	lower := strings.ToLower(n.Base)
	for _, m := range boldMarkers {
		if strings.Contains(lower, m) {
			n.Bold = true
			break
		}
	}
	for _, m := range italicMarkers {
		if strings.Contains(lower, m) {
			n.Italic = true
			break
		}
	}

	// Times-BI, Arial,BoldItalic and similar short forms
	if suffix := styleSuffix(n.Base); suffix != "" {
		switch strings.ToUpper(suffix) {
		case "B", "BD":
			n.Bold = true
		case "I", "IT":
			n.Italic = true
		case "BI", "BDIT":
			n.Bold = true
			n.Italic = true
		}
	}
	return n
}

// styleSuffix returns the part after the last '-' or ',' of name
func styleSuffix(name string) string {
	i := strings.LastIndexAny(name, "-,")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}

// isSubsetFont checks if a font is a subset (has a prefix like "ABCDEF+")
func isSubsetFont(baseFontName string) bool {
	if len(baseFontName) < 8 {
		return false
	}
	for i := 0; i < 6; i++ {
		if baseFontName[i] < 'A' || baseFontName[i] > 'Z' {
			return false
		}
	}
	return baseFontName[6] == '+'
}
