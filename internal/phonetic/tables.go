package phonetic

var (
	consonantBlends = []string{
		"bl", "br", "cl", "cr", "dr", "fl", "fr", "gl", "gr", "pl", "pr",
		"sc", "sk", "sl", "sm", "sn", "sp", "st", "sw", "tr", "tw", "dw",
		"scr", "spl", "spr", "str", "thr",
	}

	consonantDigraphs = []string{"ch", "sh", "th", "wh", "ph", "gh", "ck", "ng", "qu"}

	vowelDigraphs = []string{
		"ai", "ay", "ea", "ee", "ie", "oa", "oe", "ue", "ui", "ey",
		"au", "aw", "ew", "ow", "ou", "oy", "oi",
	}

	shortVowels = []rune{'a', 'e', 'i', 'o', 'u'}

	// Magic-e patterns; only the leading vowel is checked.
	longVowelPatterns = []string{"a_e", "e_e", "i_e", "o_e", "u_e"}

	finalBlends = []string{
		"nd", "nt", "st", "sk", "mp", "nk", "ng", "rt", "rd", "rk",
		"sp", "lk", "lt", "lp", "ct", "ft", "pt",
	}
)

// semanticCategories is ordered so tags come out in a stable order.
var semanticCategories = []struct {
	tag   string
	words []string
}{
	{"animal", []string{"cat", "dog", "bat", "rat", "pig", "cow", "fox", "bug", "bee", "fly"}},
	{"action", []string{"run", "hop", "sit", "pat", "hit", "cut", "dig", "mow", "fix", "mix"}},
	{"object", []string{"hat", "mat", "cup", "pot", "box", "bag", "car", "bus", "van", "jet"}},
	{"body", []string{"leg", "arm", "eye", "ear", "lip", "hip", "toe", "jaw", "rib"}},
	{"food", []string{"ham", "jam", "yam", "bun", "gum", "pie", "nut", "egg", "fig"}},
	{"nature", []string{"sun", "mud", "log", "bug", "web", "dew", "fog", "ice", "snow"}},
}
