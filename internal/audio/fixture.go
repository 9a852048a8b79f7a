package audio

// MPEG-1 Layer III, 96 kbit/s, 48 kHz, mono, no CRC, no padding.
// Each frame is exactly 288 bytes and holds 1152 samples (24ms).
var silentFrameHeader = [4]byte{0xFF, 0xFB, 0x74, 0xC4}

const silentFrameSize = 288

// SilentFrameSeconds is the playback length of one frame produced by SilentMP3
const SilentFrameSeconds = 0.024

// SilentMP3 returns a constant bitrate MP3 stream of n silent frames.
// It backs local development stubs and tests that need audio of a known length.
func SilentMP3(n int) []byte {
	out := make([]byte, 0, n*silentFrameSize)
	for i := 0; i < n; i++ {
		frame := make([]byte, silentFrameSize)
		copy(frame, silentFrameHeader[:])
		out = append(out, frame...)
	}
	return out
}
