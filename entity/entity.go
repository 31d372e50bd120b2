// Package entity maps named markup symbols to backend renderings. The
// table is populated once at init and read-only afterwards, so it is safe
// to share between concurrently rendering documents.
package entity // import "akhil.cc/mexdoc/entity"

// Symbol is one named special character with its per-backend forms.
type Symbol struct {
	Name string // entity name without the & and ;
	HTML string // HTML rendering, normally the entity reference itself
	Text string // plain text / roff rendering
	Rune rune   // the code point, for backends that emit UTF-8 directly
}

var table = map[string]Symbol{}

func add(name, html, text string, r rune) {
	table[name] = Symbol{Name: name, HTML: html, Text: text, Rune: r}
}

// Lookup returns the symbol for an entity name and whether it is known.
func Lookup(name string) (Symbol, bool) {
	s, ok := table[name]
	return s, ok
}

func init() {
	add("nbsp", "&#160;", " ", '\u00a0')
	add("copy", "&copy;", "(C)", '©')
	add("reg", "&reg;", "(R)", '®')
	add("trade", "&trade;", "(TM)", '™')
	add("quot", "&quot;", "\"", '"')
	add("amp", "&amp;", "&", '&')
	add("lt", "&lt;", "<", '<')
	add("gt", "&gt;", ">", '>')
	add("apos", "&apos;", "'", '\'')
	add("szlig", "&szlig;", "ss", 'ß')
	add("auml", "&auml;", "ae", 'ä')
	add("ouml", "&ouml;", "oe", 'ö')
	add("uuml", "&uuml;", "ue", 'ü')
	add("Auml", "&Auml;", "Ae", 'Ä')
	add("Ouml", "&Ouml;", "Oe", 'Ö')
	add("Uuml", "&Uuml;", "Ue", 'Ü')
	add("aacute", "&aacute;", "a", 'á')
	add("agrave", "&agrave;", "a", 'à')
	add("acirc", "&acirc;", "a", 'â')
	add("eacute", "&eacute;", "e", 'é')
	add("egrave", "&egrave;", "e", 'è')
	add("ecirc", "&ecirc;", "e", 'ê')
	add("iacute", "&iacute;", "i", 'í')
	add("oacute", "&oacute;", "o", 'ó')
	add("uacute", "&uacute;", "u", 'ú')
	add("ntilde", "&ntilde;", "n", 'ñ')
	add("ccedil", "&ccedil;", "c", 'ç')
	add("alpha", "&alpha;", "alpha", 'α')
	add("beta", "&beta;", "beta", 'β')
	add("gamma", "&gamma;", "gamma", 'γ')
	add("delta", "&delta;", "delta", 'δ')
	add("epsilon", "&epsilon;", "epsilon", 'ε')
	add("lambda", "&lambda;", "lambda", 'λ')
	add("mu", "&mu;", "mu", 'μ')
	add("pi", "&pi;", "pi", 'π')
	add("sigma", "&sigma;", "sigma", 'σ')
	add("omega", "&omega;", "omega", 'ω')
	add("Delta", "&Delta;", "Delta", 'Δ')
	add("Sigma", "&Sigma;", "Sigma", 'Σ')
	add("Omega", "&Omega;", "Omega", 'Ω')
	add("hellip", "&hellip;", "...", '…')
	add("ndash", "&ndash;", "-", '–')
	add("mdash", "&mdash;", "--", '—')
	add("lsquo", "&lsquo;", "'", '‘')
	add("rsquo", "&rsquo;", "'", '’')
	add("ldquo", "&ldquo;", "\"", '“')
	add("rdquo", "&rdquo;", "\"", '”')
	add("bull", "&bull;", "*", '•')
	add("deg", "&deg;", "deg", '°')
	add("plusmn", "&plusmn;", "+/-", '±')
	add("times", "&times;", "x", '×')
	add("divide", "&divide;", "/", '÷')
	add("minus", "&minus;", "-", '−')
	add("sum", "&sum;", "sum", '∑')
	add("prod", "&prod;", "prod", '∏')
	add("int", "&int;", "int", '∫')
	add("infin", "&infin;", "inf", '∞')
	add("le", "&le;", "<=", '≤')
	add("ge", "&ge;", ">=", '≥')
	add("ne", "&ne;", "!=", '≠')
	add("asymp", "&asymp;", "~=", '≈')
	add("larr", "&larr;", "<-", '←')
	add("rarr", "&rarr;", "->", '→')
	add("uarr", "&uarr;", "^", '↑')
	add("darr", "&darr;", "v", '↓')
	add("harr", "&harr;", "<->", '↔')
	add("lceil", "&lceil;", "[", '⌈')
	add("rceil", "&rceil;", "]", '⌉')
	add("lfloor", "&lfloor;", "[", '⌊')
	add("rfloor", "&rfloor;", "]", '⌋')
	add("sect", "&sect;", "S", '§')
	add("para", "&para;", "P", '¶')
	add("middot", "&middot;", ".", '·')
	add("euro", "&euro;", "EUR", '€')
	add("pound", "&pound;", "GBP", '£')
	add("yen", "&yen;", "JPY", '¥')
	add("cent", "&cent;", "c", '¢')
	add("frac12", "&frac12;", "1/2", '½')
	add("frac14", "&frac14;", "1/4", '¼')
	add("frac34", "&frac34;", "3/4", '¾')
	add("sup1", "&sup1;", "1", '¹')
	add("sup2", "&sup2;", "2", '²')
	add("sup3", "&sup3;", "3", '³')
	add("prime", "&prime;", "'", '′')
	add("Prime", "&Prime;", "\"", '″')
	add("dagger", "&dagger;", "+", '†')
	add("Dagger", "&Dagger;", "++", '‡')
	add("permil", "&permil;", "0/00", '‰')

	// escaped command characters, named after the character they produce
	add("bslash", "\\", "\\", '\\')
	add("at", "@", "@", '@')
	add("dollar", "$", "$", '$')
	add("hash", "#", "#", '#')
	add("percent", "%", "%", '%')
	add("pipe", "|", "|", '|')
	add("dcolon", "::", "::", ':')
	add("dash", "-", "-", '-')
}
