package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// entityPattern matches decimal, hexadecimal and named character references.
// Groups: 1=decimal digits, 2=hex digits, 3=entity name.
var entityPattern = regexp.MustCompile(`&(?:#([0-9]+)|#[xX]([0-9a-fA-F]+)|([a-zA-Z][a-zA-Z0-9]*));`)

// namedEntities maps entity names to their characters.
// Covers XML, ISO-8859-1, the Latin Extended-A names HTML defines,
// typographic punctuation, currency, arrows, common math and Greek.
var namedEntities = map[string]string{
	// XML
	"amp": "&", "lt": "<", "gt": ">", "quot": `"`, "apos": "'",

	// ISO-8859-1 symbols (nbsp is emitted as a plain space)
	"nbsp": " ", "iexcl": "¡", "cent": "¢", "pound": "£", "curren": "¤",
	"yen": "¥", "brvbar": "¦", "sect": "§", "uml": "¨", "copy": "©",
	"ordf": "ª", "laquo": "«", "not": "¬", "shy": "\u00ad", "reg": "®",
	"macr": "¯", "deg": "°", "plusmn": "±", "sup2": "²", "sup3": "³",
	"acute": "´", "micro": "µ", "para": "¶", "middot": "·", "cedil": "¸",
	"sup1": "¹", "ordm": "º", "raquo": "»", "frac14": "¼", "frac12": "½",
	"frac34": "¾", "iquest": "¿", "times": "×", "divide": "÷",

	// ISO-8859-1 letters
	"Agrave": "À", "Aacute": "Á", "Acirc": "Â", "Atilde": "Ã", "Auml": "Ä",
	"Aring": "Å", "AElig": "Æ", "Ccedil": "Ç", "Egrave": "È", "Eacute": "É",
	"Ecirc": "Ê", "Euml": "Ë", "Igrave": "Ì", "Iacute": "Í", "Icirc": "Î",
	"Iuml": "Ï", "ETH": "Ð", "Ntilde": "Ñ", "Ograve": "Ò", "Oacute": "Ó",
	"Ocirc": "Ô", "Otilde": "Õ", "Ouml": "Ö", "Oslash": "Ø", "Ugrave": "Ù",
	"Uacute": "Ú", "Ucirc": "Û", "Uuml": "Ü", "Yacute": "Ý", "THORN": "Þ",
	"szlig": "ß", "agrave": "à", "aacute": "á", "acirc": "â", "atilde": "ã",
	"auml": "ä", "aring": "å", "aelig": "æ", "ccedil": "ç", "egrave": "è",
	"eacute": "é", "ecirc": "ê", "euml": "ë", "igrave": "ì", "iacute": "í",
	"icirc": "î", "iuml": "ï", "eth": "ð", "ntilde": "ñ", "ograve": "ò",
	"oacute": "ó", "ocirc": "ô", "otilde": "õ", "ouml": "ö", "oslash": "ø",
	"ugrave": "ù", "uacute": "ú", "ucirc": "û", "uuml": "ü", "yacute": "ý",
	"thorn": "þ", "yuml": "ÿ",

	// Latin Extended-A and spacing modifiers
	"OElig": "Œ", "oelig": "œ", "Scaron": "Š", "scaron": "š", "Yuml": "Ÿ",
	"fnof": "ƒ", "circ": "ˆ", "tilde": "˜",

	// Spaces and joiners
	"ensp": "\u2002", "emsp": "\u2003", "thinsp": "\u2009",
	"zwnj": "\u200c", "zwj": "\u200d", "lrm": "\u200e", "rlm": "\u200f",

	// Typographic punctuation
	"ndash": "–", "mdash": "—", "lsquo": "‘", "rsquo": "’", "sbquo": "‚",
	"ldquo": "“", "rdquo": "”", "bdquo": "„", "dagger": "†", "Dagger": "‡",
	"bull": "•", "hellip": "…", "permil": "‰", "prime": "′", "Prime": "″",
	"lsaquo": "‹", "rsaquo": "›", "oline": "‾", "frasl": "⁄",

	// Currency and letterlike symbols
	"euro": "€", "trade": "™",

	// Arrows
	"larr": "←", "uarr": "↑", "rarr": "→", "darr": "↓", "harr": "↔",
	"lArr": "⇐", "uArr": "⇑", "rArr": "⇒", "dArr": "⇓", "hArr": "⇔",

	// Math
	"minus": "−", "lowast": "∗", "radic": "√", "prop": "∝", "infin": "∞",
	"ang": "∠", "and": "∧", "or": "∨", "cap": "∩", "cup": "∪",
	"int": "∫", "there4": "∴", "sim": "∼", "cong": "≅", "asymp": "≈",
	"ne": "≠", "equiv": "≡", "le": "≤", "ge": "≥", "sub": "⊂",
	"sup": "⊃", "sube": "⊆", "supe": "⊇", "forall": "∀", "part": "∂",
	"exist": "∃", "empty": "∅", "nabla": "∇", "isin": "∈", "notin": "∉",
	"ni": "∋", "prod": "∏", "sum": "∑", "sdot": "⋅", "loz": "◊",

	// Greek
	"Alpha": "Α", "Beta": "Β", "Gamma": "Γ", "Delta": "Δ", "Epsilon": "Ε",
	"Zeta": "Ζ", "Eta": "Η", "Theta": "Θ", "Iota": "Ι", "Kappa": "Κ",
	"Lambda": "Λ", "Mu": "Μ", "Nu": "Ν", "Xi": "Ξ", "Omicron": "Ο",
	"Pi": "Π", "Rho": "Ρ", "Sigma": "Σ", "Tau": "Τ", "Upsilon": "Υ",
	"Phi": "Φ", "Chi": "Χ", "Psi": "Ψ", "Omega": "Ω",
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"zeta": "ζ", "eta": "η", "theta": "θ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "omicron": "ο",
	"pi": "π", "rho": "ρ", "sigmaf": "ς", "sigma": "σ", "tau": "τ",
	"upsilon": "υ", "phi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
}

// foldedEntities indexes namedEntities by lowercase name, keeping only names
// whose lowercase form is unambiguous (so "AMP" resolves but "AGRAVE" does not).
var foldedEntities = buildFoldedEntities()

func buildFoldedEntities() map[string]string {
	folded := make(map[string]string, len(namedEntities))
	ambiguous := make(map[string]bool)
	for name, char := range namedEntities {
		key := strings.ToLower(name)
		if prev, ok := folded[key]; ok && prev != char {
			ambiguous[key] = true
			continue
		}
		folded[key] = char
	}
	for key := range ambiguous {
		delete(folded, key)
	}
	return folded
}

// DecodeEntities replaces character references with the characters they name.
// The input is scanned once, so decoded output is never decoded again:
// "&amp;#39;" becomes "&#39;", not "'". References that name nothing or an
// invalid code point are left as written.
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}
	return replaceAllSubmatchFunc(entityPattern, text, func(m []string) string {
		switch {
		case m[1] != "":
			return decodeCodePoint(m[0], m[1], 10)
		case m[2] != "":
			return decodeCodePoint(m[0], m[2], 16)
		default:
			return decodeNamed(m[0], m[3])
		}
	})
}

// DecodeEntitiesRule adapts DecodeEntities to the Rule signature, honoring
// Options.DecodeEntities.
func DecodeEntitiesRule(text string, opts *Options) string {
	if !orDefault(opts).DecodeEntities {
		return text
	}
	return DecodeEntities(text)
}

// decodeCodePoint parses digits in base and returns the character, or ref
// unchanged when the value does not fit or is not a Unicode scalar value.
func decodeCodePoint(ref, digits string, base int) string {
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil || n == 0 {
		return ref
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return ref
	}
	return string(r)
}

func decodeNamed(ref, name string) string {
	if char, ok := namedEntities[name]; ok {
		return char
	}
	if char, ok := foldedEntities[strings.ToLower(name)]; ok {
		return char
	}
	return ref
}
