package synthesis

import "strings"

// TimingScale converts audio seconds into the total speech-mark window in
// milliseconds. It is 1200 rather than 1000, so the windows span 1.2x the
// real audio length; clients already tune their highlighting to this.
const TimingScale = 1200.0

// SpeechMark is the estimated playback window of one word
type SpeechMark struct {
	Type  string  `json:"type"`
	Value string  `json:"value"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Words splits text on single spaces, keeping punctuation and empty tokens
// produced by repeated spaces.
func Words(text string) []string {
	return strings.Split(text, " ")
}

// WordDuration returns the uniform per-word window in milliseconds
func WordDuration(durationSeconds float64, totalWords int) float64 {
	if totalWords <= 0 {
		return 0
	}
	return (durationSeconds * TimingScale) / float64(totalWords)
}

// EstimateSpeechMarks spreads the audio duration linearly over the words of text.
// Every word gets the same width regardless of its length.
func EstimateSpeechMarks(text string, durationSeconds float64) []SpeechMark {
	words := Words(text)
	wordDuration := WordDuration(durationSeconds, len(words))

	marks := make([]SpeechMark, len(words))
	for i, w := range words {
		marks[i] = SpeechMark{
			Type:  "word",
			Value: w,
			Start: float64(i) * wordDuration,
			End:   float64(i+1) * wordDuration,
		}
	}
	return marks
}
