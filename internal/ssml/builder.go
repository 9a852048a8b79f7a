// Package ssml builds the Speech Synthesis Markup Language payloads sent to
// the Azure speech service.
//
// Text and voice names are embedded verbatim. Callers that pass XML special
// characters get markup the provider will reject.
package ssml

import "fmt"

// SentenceBoundarySilence is the pause injected between sentences in synthesis markup
const SentenceBoundarySilence = "50ms"

const previewTemplate = `
<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'>
  <voice name='%s'>%s</voice>
</speak>`

const synthesisTemplate = `
<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xmlns:mstts='http://www.w3.org/2001/mstts' xml:lang='en-US'>
  <voice name='%s'>
    <mstts:silence type="sentenceboundary" value="%s"/>
    %s
  </voice>
</speak>`

// BuildPreview returns the plain markup shown to users before synthesis
func BuildPreview(text, voiceName string) string {
	return fmt.Sprintf(previewTemplate, voiceName, text)
}

// BuildSynthesis returns the markup posted to the synthesis endpoint
func BuildSynthesis(text, voiceName string) string {
	return fmt.Sprintf(synthesisTemplate, voiceName, SentenceBoundarySilence, text)
}
