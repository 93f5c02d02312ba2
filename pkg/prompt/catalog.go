package prompt

// Language is a selectable language option for a session slot.
type Language struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Voice is a selectable engine voice.
type Voice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Session defaults.
const (
	DefaultLanguage1 = Auto
	DefaultLanguage2 = "English (US)"
	DefaultVoice1    = "Orus"
	DefaultVoice2    = "Aoede"
)

// Languages lists the selectable languages. The Auto entry is only valid
// for slot 1.
var Languages = []Language{
	{Name: "Auto-detect", Value: Auto},
	{Name: "English (US)", Value: "English (US)"},
	{Name: "English (UK)", Value: "English (UK)"},
	{Name: "Dutch (Flemish)", Value: "Dutch (Flemish)"},
	{Name: "Dutch (Netherlands)", Value: "Dutch (Netherlands)"},
	{Name: "French", Value: "French"},
	{Name: "German", Value: "German"},
	{Name: "Spanish", Value: "Spanish"},
	{Name: "Italian", Value: "Italian"},
	{Name: "Portuguese (Brazil)", Value: "Portuguese (Brazil)"},
	{Name: "Polish", Value: "Polish"},
	{Name: "Turkish", Value: "Turkish"},
	{Name: "Arabic", Value: "Arabic"},
	{Name: "Russian", Value: "Russian"},
	{Name: "Ukrainian", Value: "Ukrainian"},
	{Name: "Hindi", Value: "Hindi"},
	{Name: "Mandarin Chinese", Value: "Mandarin Chinese"},
	{Name: "Japanese", Value: "Japanese"},
	{Name: "Korean", Value: "Korean"},
	{Name: "Vietnamese", Value: "Vietnamese"},
}

// Voices lists the prebuilt engine voices.
var Voices = []Voice{
	{Name: "Orus (male, firm)", Value: "Orus"},
	{Name: "Puck (male, upbeat)", Value: "Puck"},
	{Name: "Charon (male, informative)", Value: "Charon"},
	{Name: "Fenrir (male, excitable)", Value: "Fenrir"},
	{Name: "Aoede (female, breezy)", Value: "Aoede"},
	{Name: "Kore (female, firm)", Value: "Kore"},
	{Name: "Leda (female, youthful)", Value: "Leda"},
	{Name: "Zephyr (female, bright)", Value: "Zephyr"},
}

// ValidLanguage reports whether v names a catalog language, honoring the
// slot-1-only rule for the Auto sentinel.
func ValidLanguage(v string, allowAuto bool) bool {
	for _, l := range Languages {
		if l.Value == v {
			return v != Auto || allowAuto
		}
	}
	return false
}
