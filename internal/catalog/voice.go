package catalog

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cast"

	"github.com/lexiqai/voice-studio/internal/tts"
)

// DefaultWordsPerMinute is used when the provider does not report a speaking rate
const DefaultWordsPerMinute = 150

// ErrInvalidLocale is returned for a locale without a region subtag
var ErrInvalidLocale = errors.New("locale has no region subtag")

// VoiceDescriptor is one normalized entry of the voice catalog.
// JSON names match the catalog file consumed by the browser UI.
type VoiceDescriptor struct {
	DisplayName     string `json:"DisplayName"`
	ShortName       string `json:"ShortName"`
	Locale          string `json:"Locale"`
	Gender          string `json:"Gender"`
	SampleRateHertz int    `json:"SampleRateHertz"`
	WordsPerMinute  int    `json:"WordsPerMinute"`
	FlagImageURL    string `json:"flag"`
	Engine          string `json:"engine"`
}

// Normalizer turns provider voices into catalog entries
type Normalizer struct {
	FlagBaseURL string
	Engine      string
}

// Normalize maps a single provider voice to a descriptor
func (n Normalizer) Normalize(v tts.Voice) (VoiceDescriptor, error) {
	region, err := Region(v.Locale)
	if err != nil {
		return VoiceDescriptor{}, fmt.Errorf("voice %q: %w", v.ShortName, err)
	}

	sampleRate, err := toInt(v.SampleRateHertz)
	if err != nil {
		return VoiceDescriptor{}, fmt.Errorf("voice %q: sample rate: %w", v.ShortName, err)
	}

	wpm, err := toInt(v.WordsPerMinute)
	if err != nil || wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}

	return VoiceDescriptor{
		DisplayName:     v.DisplayName,
		ShortName:       v.ShortName,
		Locale:          v.Locale,
		Gender:          v.Gender,
		SampleRateHertz: sampleRate,
		WordsPerMinute:  wpm,
		FlagImageURL:    n.FlagURL(region),
		Engine:          n.Engine,
	}, nil
}

// NormalizeAll maps every provider voice, failing on the first invalid entry
func (n Normalizer) NormalizeAll(voices []tts.Voice) ([]VoiceDescriptor, error) {
	out := make([]VoiceDescriptor, 0, len(voices))
	for _, v := range voices {
		d, err := n.Normalize(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// FlagURL returns the flag image for a region subtag
func (n Normalizer) FlagURL(region string) string {
	return fmt.Sprintf("%s/%s.png", strings.TrimRight(n.FlagBaseURL, "/"), strings.ToLower(region))
}

// Region extracts the region subtag of an IETF language tag.
// Script subtags are skipped, so "zh-Hans-CN" yields "CN".
func Region(locale string) (string, error) {
	parts := strings.Split(locale, "-")
	if len(parts) < 2 || parts[0] == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocale, locale)
	}
	for _, p := range parts[1:] {
		if isRegionSubtag(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLocale, locale)
}

// isRegionSubtag matches two letters or three digits
func isRegionSubtag(s string) bool {
	switch len(s) {
	case 2:
		return unicode.IsLetter(rune(s[0])) && unicode.IsLetter(rune(s[1]))
	case 3:
		for _, r := range s {
			if !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	}
	return false
}

func toInt(v any) (int, error) {
	if v == nil {
		return 0, nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return cast.ToIntE(v)
}
