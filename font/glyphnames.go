package font

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// glyphNameToUnicode maps Adobe glyph names to runes. This is the subset of
// the Adobe Glyph List that shows up in /Differences arrays and bfchar
// destinations in practice; names outside it go through the pattern
// heuristics in resolveGlyphName.
var glyphNameToUnicode = map[string]rune{
	// Whitespace and basic punctuation
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
	"comma": ',', "hyphen": '-', "period": '.', "slash": '/',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=',
	"greater": '>', "question": '?', "at": '@',
	"bracketleft": '[', "backslash": '\\', "bracketright": ']',
	"asciicircum": '^', "underscore": '_', "grave": '`',
	"braceleft": '{', "bar": '|', "braceright": '}', "asciitilde": '~',

	// Quotes and dashes
	"quoteleft": '‘', "quoteright": '’',
	"quotedblleft": '“', "quotedblright": '”',
	"quotesinglbase": '‚', "quotedblbase": '„',
	"guilsinglleft": '‹', "guilsinglright": '›',
	"guillemotleft": '«', "guillemotright": '»',
	"endash": '–', "emdash": '—', "hyphentwo": '‐',

	// Symbols
	"bullet": '•', "dagger": '†', "daggerdbl": '‡',
	"ellipsis": '…', "perthousand": '‰', "fraction": '⁄',
	"florin": 'ƒ', "section": '§', "paragraph": '¶',
	"periodcentered": '·', "degree": '°', "minus": '−',
	"multiply": '×', "divide": '÷', "plusminus": '±',
	"notequal": '≠', "lessequal": '≤', "greaterequal": '≥',
	"copyright": '©', "registered": '®', "trademark": '™',
	"Euro": '€', "cent": '¢', "sterling": '£',
	"yen": '¥', "currency": '¤',
	"exclamdown": '¡', "questiondown": '¿',
	"ordfeminine": 'ª', "ordmasculine": 'º',
	"brokenbar": '¦', "logicalnot": '¬', "mu": 'µ',
	"onequarter": '¼', "onehalf": '½', "threequarters": '¾',
	"onesuperior": '¹', "twosuperior": '²', "threesuperior": '³',
	"macron": '¯', "acute": '´', "cedilla": '¸',
	"dieresis": '¨', "circumflex": 'ˆ', "tilde": '˜',
	"breve": '˘', "caron": 'ˇ', "dotaccent": '˙',
	"ring": '˚', "ogonek": '˛', "hungarumlaut": '˝',

	// Ligatures
	"fi": 'ﬁ', "fl": 'ﬂ', "ff": 'ﬀ',
	"ffi": 'ﬃ', "ffl": 'ﬄ',

	// Accented capitals
	"Agrave": 'À', "Aacute": 'Á', "Acircumflex": 'Â',
	"Atilde": 'Ã', "Adieresis": 'Ä', "Aring": 'Å',
	"AE": 'Æ', "Ccedilla": 'Ç',
	"Egrave": 'È', "Eacute": 'É', "Ecircumflex": 'Ê',
	"Edieresis": 'Ë',
	"Igrave":    'Ì', "Iacute": 'Í', "Icircumflex": 'Î',
	"Idieresis": 'Ï',
	"Eth":       'Ð', "Ntilde": 'Ñ',
	"Ograve": 'Ò', "Oacute": 'Ó', "Ocircumflex": 'Ô',
	"Otilde": 'Õ', "Odieresis": 'Ö', "Oslash": 'Ø',
	"Ugrave": 'Ù', "Uacute": 'Ú', "Ucircumflex": 'Û',
	"Udieresis": 'Ü', "Yacute": 'Ý', "Thorn": 'Þ',
	"OE": 'Œ', "Scaron": 'Š', "Ydieresis": 'Ÿ',
	"Zcaron": 'Ž', "Lslash": 'Ł',

	// Accented lowercase
	"agrave": 'à', "aacute": 'á', "acircumflex": 'â',
	"atilde": 'ã', "adieresis": 'ä', "aring": 'å',
	"ae": 'æ', "ccedilla": 'ç',
	"egrave": 'è', "eacute": 'é', "ecircumflex": 'ê',
	"edieresis": 'ë',
	"igrave":    'ì', "iacute": 'í', "icircumflex": 'î',
	"idieresis": 'ï',
	"eth":       'ð', "ntilde": 'ñ',
	"ograve": 'ò', "oacute": 'ó', "ocircumflex": 'ô',
	"otilde": 'õ', "odieresis": 'ö', "oslash": 'ø',
	"ugrave": 'ù', "uacute": 'ú', "ucircumflex": 'û',
	"udieresis": 'ü', "yacute": 'ý', "thorn": 'þ',
	"ydieresis": 'ÿ', "germandbls": 'ß',
	"oe": 'œ', "scaron": 'š', "zcaron": 'ž',
	"lslash": 'ł', "dotlessi": 'ı',

	// Greek (symbol fonts)
	"Alpha": 'Α', "Beta": 'Β', "Gamma": 'Γ',
	"Delta": 'Δ', "Epsilon": 'Ε', "Zeta": 'Ζ',
	"Eta": 'Η', "Theta": 'Θ', "Iota": 'Ι',
	"Kappa": 'Κ', "Lambda": 'Λ', "Mu": 'Μ',
	"Nu": 'Ν', "Xi": 'Ξ', "Omicron": 'Ο',
	"Pi": 'Π', "Rho": 'Ρ', "Sigma": 'Σ',
	"Tau": 'Τ', "Upsilon": 'Υ', "Phi": 'Φ',
	"Chi": 'Χ', "Psi": 'Ψ', "Omega": 'Ω',
	"alpha": 'α', "beta": 'β', "gamma": 'γ',
	"delta": 'δ', "epsilon": 'ε', "zeta": 'ζ',
	"eta": 'η', "theta": 'θ', "iota": 'ι',
	"kappa": 'κ', "lambda": 'λ',
	"nu": 'ν', "xi": 'ξ', "omicron": 'ο',
	"pi": 'π', "rho": 'ρ', "sigma": 'σ',
	"sigma1": 'ς', "tau": 'τ', "upsilon": 'υ',
	"phi": 'φ', "phi1": 'ϕ', "chi": 'χ',
	"psi": 'ψ', "omega": 'ω',

	// Math (symbol fonts)
	"integral": '∫', "partialdiff": '∂', "infinity": '∞',
	"summation": '∑', "product": '∏', "radical": '√',
	"approxequal": '≈', "element": '∈', "arrowright": '→',
	"arrowleft": '←', "arrowup": '↑', "arrowdown": '↓',
	"gradient": '∇', "planckover2pi": 'ℏ',

	// Misc
	"nbspace": '\u00a0', "sfthyphen": '\u00ad', "middot": '·',
	"apple": '\uf8ff', "notdef": '\ufffd',
}

func init() {
	// Letters and digits name themselves.
	for r := rune('A'); r <= 'Z'; r++ {
		glyphNameToUnicode[string(r)] = r
	}
	for r := rune('a'); r <= 'z'; r++ {
		glyphNameToUnicode[string(r)] = r
	}
	for i := 0; i <= 9; i++ {
		names := []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
		glyphNameToUnicode[names[i]] = rune('0' + i)
		glyphNameToUnicode[strconv.Itoa(i)] = rune('0' + i)
	}
}

// resolveGlyphName maps a glyph name to a rune. After the table it applies
// the last-resort heuristics: uniXXXX/uXXXX hex names, numeric names like
// G36 or cid54 that symbol subsetters emit, suffixed variants (a.sc), and
// bare single-character names.
func resolveGlyphName(name string) (rune, bool) {
	if name == "" {
		return 0, false
	}
	if r, ok := glyphNameToUnicode[name]; ok {
		return r, true
	}

	// uni0041 or uni0041.alt
	if strings.HasPrefix(name, "uni") && len(name) >= 7 {
		if v, err := strconv.ParseUint(name[3:7], 16, 32); err == nil {
			return rune(v), true
		}
	}
	// u0041, u1D400
	if name[0] == 'u' && len(name) >= 5 && len(name) <= 7 {
		if v, err := strconv.ParseUint(name[1:], 16, 32); err == nil && v <= 0x10FFFF {
			return rune(v), true
		}
	}

	// Variant suffix: a.sc, one.oldstyle
	if dot := strings.IndexByte(name, '.'); dot > 0 {
		return resolveGlyphName(name[:dot])
	}

	// Numeric subset names: G36, g36, C36, cid36. The number is the
	// character code the subsetter assigned, best decoded as itself.
	for _, prefix := range []string{"cid", "G", "g", "C", "c"} {
		if strings.HasPrefix(name, prefix) {
			if v, err := strconv.ParseUint(name[len(prefix):], 10, 32); err == nil && v <= 0x10FFFF {
				return rune(v), true
			}
		}
	}

	// A name that is a single character stands for that character
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return r, true
	}

	return 0, false
}
