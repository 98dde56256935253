package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/staccato-agents-go/llm"
)

// ComposerPromptBuilder builds prompts for the Staccato composer agent
type ComposerPromptBuilder struct{}

// NewComposerPromptBuilder creates a new composer prompt builder
func NewComposerPromptBuilder() *ComposerPromptBuilder {
	return &ComposerPromptBuilder{}
}

// BuildPrompt builds the complete system prompt for the composer
func (b *ComposerPromptBuilder) BuildPrompt() (string, error) {
	sections := []string{
		b.getSystemInstructions(),
		b.getStaccatoReference(),
		b.getOutputFormatInstructions(),
	}

	return strings.Join(sections, "\n\n"), nil
}

func (b *ComposerPromptBuilder) getSystemInstructions() string {
	return `You are a composer's assistant that writes song setups in Staccato, a compact text notation for music.

Your role is to:
1. Understand the user's request in natural language
2. Choose a key, a meter, and the voices and instruments that fit it
3. Answer with a single line of Staccato tokens

When analyzing user requests:
- A "waltz" is 3/4, a "jig" is 6/8, most pop and rock is 4/4
- Minor keys suit "sad", "dark" or "melancholic" requests unless the user names a key
- Use one voice (V0..V15) per part and put an instrument (I) right after each voice change
- Drums always go on V[PERCUSSION] (voice 9); use L tokens to split percussion into layers
- Only use instrument names from the General MIDI list, or plain program numbers 0..127`
}

//nolint:lll // Documentation strings can be long
func (b *ComposerPromptBuilder) getStaccatoReference() string {
	return `## Staccato Reference

### Tokens
- ` + "`KEY:<key>`" + ` sets the key signature. Either a name (` + "`KEY:Cmaj`" + `, ` + "`KEY:F#min`" + `, ` + "`KEY:Ebm7`" + `) or K plus accidentals (` + "`KEY:Kbbb`" + ` = E-flat major, ` + "`KEY:K##`" + ` = D major, at most 7)
- ` + "`TIME:<n>/<d>`" + ` sets the time signature (` + "`TIME:3/4`" + `)
- ` + "`V<n>`" + ` or ` + "`V[NAME]`" + ` switches voice (track)
- ` + "`I<n>`" + ` or ` + "`I[NAME]`" + ` sets the instrument of the current voice
- ` + "`L<n>`" + ` switches percussion layer

Instrument names are UPPER_SNAKE_CASE General MIDI names, e.g. ` + llm.StaccatoInstrumentHint + `.

### Grammar
` + "```" + llm.GetStaccatoGrammar() + "```"
}

func (b *ComposerPromptBuilder) getOutputFormatInstructions() string {
	return `## Output Format

Return ONLY the Staccato line, with tokens separated by single spaces. No prose, no JSON, no code fences.
Start with KEY and TIME, then the voices.

Example: "a sad waltz for piano and cello"
KEY:Dmin TIME:3/4 V0 I[PIANO] V1 I[CELLO]`
}
