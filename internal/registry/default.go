package registry

// DefaultPhrases disqualify a line outright: commentary idioms first, then
// programming vocabulary that leaks in from model responses.
var DefaultPhrases = []string{
	"وشبه الشيء منجذب إليه",
	"شبه الشيء",
	"منجذب إليه",
	"القادح",
	"التعبير",
	"يعني",
	"شرح",
	"import", "def", "print", "return", "class",
	"function", "variable", "string", "int",
	"file", "open", "read", "write",
}

// DefaultExplanations match commentary and definition structure.
var DefaultExplanations = []PatternSpec{
	{"colon-definition", `^.*:\s.*$`},
	{"key-value-separator", `^.*\s*[=-]\s*.*$`},
	{"al-qawl", `.*القول.*`},
	{"yaqul", `.*يقول.*`},
	{"mana", `.*معنى.*`},
	{"tafsir", `.*تفسير.*`},
	{"sharh", `.*شرح.*`},
	{"single-definition", `^.*\s*[،:]\s*[^،]*$`},
	{"al-tabir", `.*التعبير.*`},
	{"al-maqsud", `.*المقصود.*`},
	{"al-tarif", `.*التعريف.*`},
	{"ay-colon", `.*أي.*:.*`},
	{"shibh", `.*شبه.*`},
	{"mithl", `.*مثل.*`},
}

// DefaultPoetry positively suggest verse structure.
var DefaultPoetry = []PatternSpec{
	{"dash-lead", `^-\s.*`},
	{"arabic-punctuation", `.*[،؛!?].*`},
	{"word-final-adjacency", `.*[اإأآؤئءيىةوه]\s+[اإأآؤئءيىةوه].*`},
}

var defaultRegistry = MustNew(DefaultPhrases, DefaultExplanations, DefaultPoetry)

// Default returns the process-wide registry built from the default tables.
func Default() *Registry { return defaultRegistry }
