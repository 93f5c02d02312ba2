// Package prompt derives the instruction text handed to the live
// translation engine from the session's language pair and topic.
//
// Synthesize is total and deterministic: any combination of inputs,
// including empty strings and the Auto sentinel, yields a usable prompt.
package prompt

import (
	"fmt"
	"strings"
)

// Auto is the sentinel language value for a slot whose concrete language
// is detected at runtime from incoming speech.
const Auto = "auto"

// FallbackLanguage is the target used for detected-speaker translation
// before any counterpart language has been heard.
const FallbackLanguage = "English"

// Synthesize builds the engine instruction text for a language pair and an
// optional topic. lang1 is the Staff slot, lang2 the Guest slot; either may
// be Auto (slot 2 only reaches Auto through direct synthesis, the settings
// store refuses it).
func Synthesize(lang1, lang2, topic string) string {
	var b strings.Builder

	switch {
	case lang1 != Auto && lang2 != Auto:
		writeFixedPair(&b, orDefault(lang1), orDefault(lang2))
	case lang1 == Auto && lang2 != Auto:
		writeSingleFixed(&b, orDefault(lang2), "Staff", "Guest")
	case lang1 != Auto && lang2 == Auto:
		writeSingleFixed(&b, orDefault(lang1), "Visitor", "Staff")
	default:
		writeDualAuto(&b)
	}

	b.WriteString(`
**CRITICAL INSTRUCTIONS:**
1. OUTPUT **ONLY** THE TRANSLATED TEXT.
2. MIMIC the qualities of the source speech in your rendition. This includes:
   - Tone and emotion
   - Speed and rhythm
   - Emphasis and hesitation
   - Whispering or loudness
   - Formality level
3. DO NOT invent content that is not present in the source audio.

**DO NOT:**
- DO NOT add prefixes, labels, or explanations (e.g., "In Spanish: ...").
- DO NOT have a conversation or simulate dialogue.
- DO NOT add commentary or remarks.
- DO NOT ask questions.

Your entire response must be the translated phrase. If the target language is Spanish, your output must be "Hola", not "The translation is Hola".
`)

	if topic != "" {
		fmt.Fprintf(&b, "\nThe conversation is about: %s. Please use appropriate terminology and context.\n", topic)
	}

	return b.String()
}

// writeFixedPair covers the case where both slots name a concrete language.
func writeFixedPair(b *strings.Builder, lang1, lang2 string) {
	fmt.Fprintf(b, `You are an expert language translator. Your only task is to translate speech between %[1]s and %[2]s.

1. DETECT which of the two languages the input is spoken in.
2. TRANSLATE the input into the other language: if it is %[1]s, translate it to %[2]s; if it is %[2]s, translate it to %[1]s.
`, lang1, lang2)
}

// writeSingleFixed covers the cases where exactly one slot is fixed. The
// fixed language belongs to fixedParty; every other detected language is
// attributed to otherParty and locked in once heard.
func writeSingleFixed(b *strings.Builder, fixed, fixedParty, otherParty string) {
	fmt.Fprintf(b, `You are an expert language translator mediating between a %[2]s speaking %[1]s and a %[3]s speaking another language.

1. When the input is spoken in %[1]s, treat it as %[2]s speech and translate it into the %[3]s's language. If you have not yet heard the %[3]s speak, translate it into %[4]s.
2. When the input is spoken in any other language, treat it as %[3]s speech and translate it into %[1]s.
3. The first non-%[1]s language you detect is the %[3]s's language. Lock on to it and keep using it as the %[3]s's language for the rest of the session.
`, fixed, fixedParty, otherParty, FallbackLanguage)
}

// writeDualAuto covers the case where both slots auto-detect.
func writeDualAuto(b *strings.Builder) {
	fmt.Fprintf(b, `You are an expert language translator. Neither party's language is configured; detect both from speech.

1. DETECT the language of each input.
2. If the input is not %[1]s, translate it into %[1]s.
3. If the input is %[1]s, translate it into the other language heard in this conversation so far.
`, FallbackLanguage)
}

// orDefault substitutes the fallback language for an empty slot value so
// the synthesized text never names a blank language.
func orDefault(lang string) string {
	if strings.TrimSpace(lang) == "" {
		return FallbackLanguage
	}
	return lang
}
