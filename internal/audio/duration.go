package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tcolgate/mp3"
)

// ErrNoFrames is returned when a buffer contains no decodable MP3 frame
var ErrNoFrames = errors.New("no mp3 frames found")

// Duration returns the playback length in seconds of an MP3 stream,
// summed from its frame headers. The audio payload itself is not decoded.
func Duration(data []byte) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty audio data")
	}

	d := mp3.NewDecoder(bytes.NewReader(data))

	var (
		f       mp3.Frame
		skipped int
		seconds float64
		frames  int
	)
	for {
		err := d.Decode(&f, &skipped)
		if err == io.EOF {
			break
		}
		if err != nil {
			// A truncated trailing frame still leaves a usable duration
			if errors.Is(err, io.ErrUnexpectedEOF) && frames > 0 {
				break
			}
			return 0, fmt.Errorf("decode frame %d: %w", frames, err)
		}
		seconds += f.Duration().Seconds()
		frames++
	}

	if frames == 0 {
		return 0, ErrNoFrames
	}
	return seconds, nil
}
