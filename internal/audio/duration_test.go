package audio

import (
	"math"
	"testing"
)

// MPEG-2 Layer III, 32 kbit/s, 16 kHz, mono: the audio-16khz-32kbitrate-mono-mp3
// output format. Each frame is 144 bytes and holds 576 samples (36ms).
var azureFrameHeader = [4]byte{0xFF, 0xF3, 0x48, 0xC4}

const (
	azureFrameSize    = 144
	azureFrameSeconds = 0.036
)

// mp3Frames repeats a zero-filled frame carrying header n times
func mp3Frames(header [4]byte, size, n int) []byte {
	out := make([]byte, 0, n*size)
	for i := 0; i < n; i++ {
		frame := make([]byte, size)
		copy(frame, header[:])
		out = append(out, frame...)
	}
	return out
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected float64
	}{
		{"single frame", SilentMP3(1), SilentFrameSeconds},
		{"fifty frames", SilentMP3(50), 50 * SilentFrameSeconds},
		{"three seconds", SilentMP3(125), 125 * SilentFrameSeconds},
		{"16khz single frame", mp3Frames(azureFrameHeader, azureFrameSize, 1), azureFrameSeconds},
		{"16khz hundred frames", mp3Frames(azureFrameHeader, azureFrameSize, 100), 100 * azureFrameSeconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := tt.expected

			got, err := Duration(tt.data)
			if err != nil {
				t.Fatalf("Duration failed: %v", err)
			}
			if math.Abs(got-expected) > 1e-9 {
				t.Errorf("Expected %.6fs, got %.6fs", expected, got)
			}
		})
	}
}

func TestDuration_Empty(t *testing.T) {
	if _, err := Duration(nil); err == nil {
		t.Error("Expected error for empty audio")
	}
}

func TestDuration_NotMP3(t *testing.T) {
	_, err := Duration([]byte(`{"error":{"code":"InvalidRequest"}}`))
	if err == nil {
		t.Fatal("Expected error for non-mp3 payload")
	}
}

func TestSilentMP3_Size(t *testing.T) {
	if got := len(SilentMP3(3)); got != 3*silentFrameSize {
		t.Errorf("Expected %d bytes, got %d", 3*silentFrameSize, got)
	}
}
