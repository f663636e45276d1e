package audio

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// Path is the decode path the normalizer took for a given input.
type Path string

const (
	PathWav         Path = "wav"
	PathMp3         Path = "mp3"
	PathPassthrough Path = "passthrough"
)

type Result struct {
	// PCM is 16-bit signed little-endian mono at the target rate,
	// except on the passthrough path, where it is the input unchanged.
	PCM  []byte
	Path Path
}

// Normalize converts audio of an unknown container into raw PCM at targetRate.
// WAV and MP3 are decoded and resampled; anything else passes through as-is so
// the caller still gets some audio instead of an error.
func Normalize(data []byte, targetRate int) (*Result, error) {
	start := time.Now()

	switch detectContainer(data) {
	case PathWav:
		pcm, err := normalizeWav(data, targetRate)
		if err != nil {
			metrics.DecodeErrors.WithLabelValues(string(PathWav)).Inc()
			return nil, fmt.Errorf("failed to decode wav: %w", err)
		}

		metrics.ConvertTime.Observe(time.Since(start).Seconds())

		return &Result{PCM: pcm, Path: PathWav}, nil
	case PathMp3:
		pcm, err := normalizeMp3(data, targetRate)
		if err != nil {
			metrics.DecodeErrors.WithLabelValues(string(PathMp3)).Inc()
			return nil, fmt.Errorf("failed to decode mp3: %w", err)
		}

		metrics.ConvertTime.Observe(time.Since(start).Seconds())

		return &Result{PCM: pcm, Path: PathMp3}, nil
	default:
		return &Result{PCM: data, Path: PathPassthrough}, nil
	}
}

func detectContainer(data []byte) Path {
	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")) {
		return PathWav
	}

	if len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")) {
		return PathMp3
	}

	// bare mpeg frame sync
	if len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0 {
		return PathMp3
	}

	return PathPassthrough
}

func normalizeWav(data []byte, targetRate int) ([]byte, error) {
	d := wav.NewDecoder(bytes.NewReader(data))

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read pcm buffer: %w", err)
	}

	if buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("wav has no valid format chunk")
	}

	samples := toInt16(buf.Data, int(d.BitDepth))
	samples = downmix(samples, buf.Format.NumChannels)
	samples = resampleLinear(samples, buf.Format.SampleRate, targetRate)

	return samplesToBytes(samples), nil
}

func normalizeMp3(data []byte, targetRate int) ([]byte, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stream: %w", err)
	}

	// go-mp3 always emits 16-bit LE stereo
	if len(raw)%4 != 0 {
		raw = raw[:len(raw)-len(raw)%4]
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(uint16(raw[i*2]) | uint16(raw[i*2+1])<<8)
	}

	samples = downmix(samples, 2)
	samples = resampleLinear(samples, dec.SampleRate(), targetRate)

	return samplesToBytes(samples), nil
}

// toInt16 rescales decoded samples of an arbitrary bit depth to 16 bits.
func toInt16(data []int, bitDepth int) []int16 {
	out := make([]int16, len(data))

	switch bitDepth {
	case 8: // 8-bit wav is unsigned
		for i, v := range data {
			out[i] = int16((v - 128) << 8)
		}
	case 16:
		for i, v := range data {
			out[i] = int16(v)
		}
	case 24:
		for i, v := range data {
			out[i] = int16(v >> 8)
		}
	case 32:
		for i, v := range data {
			out[i] = int16(v >> 16)
		}
	default:
		for i, v := range data {
			out[i] = int16(v)
		}
	}

	return out
}

// downmix averages interleaved channels into mono.
func downmix(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}

	frames := len(samples) / channels
	out := make([]int16, frames)

	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += int(samples[i*channels+c])
		}
		out[i] = int16(sum / channels)
	}

	return out
}

func samplesToBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(uint16(s) >> 8)
	}

	return out
}
