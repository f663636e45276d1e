package audio_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"app/pkg/audio"

	"github.com/stretchr/testify/require"
)

func buildWav(t *testing.T, sampleRate, channels int, samples []int16) []byte {
	t.Helper()

	buf := &bytes.Buffer{}

	dataLen := len(samples) * 2

	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // pcm
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*2))
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels*2))
	_ = binary.Write(buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	_ = binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

func sine(sampleRate, seconds int) []int16 {
	samples := make([]int16, sampleRate*seconds)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		samples[i] = int16(16383 * math.Sin(2*math.Pi*440*t))
	}

	return samples
}

func TestNormalizeWavResamples(t *testing.T) {
	assert := require.New(t)

	// 1 second at 44100 mono, target 16000 => ~32000 bytes
	wavData := buildWav(t, 44100, 1, sine(44100, 1))

	res, err := audio.Normalize(wavData, 16000)
	assert.NoError(err)

	assert.Equal(audio.PathWav, res.Path)
	assert.Zero(len(res.PCM) % 2)
	assert.InDelta(32000, len(res.PCM), 4)
}

func TestNormalizeWavIdempotent(t *testing.T) {
	assert := require.New(t)

	samples := sine(16000, 1)
	wavData := buildWav(t, 16000, 1, samples)

	res, err := audio.Normalize(wavData, 16000)
	assert.NoError(err)

	assert.Equal(audio.PathWav, res.Path)
	assert.Len(res.PCM, len(samples)*2)

	// output is the data chunk with the header stripped
	assert.Equal(wavData[44:], res.PCM)
}

func TestNormalizeWavDownmixesStereo(t *testing.T) {
	assert := require.New(t)

	// interleaved stereo, constant L=1000 R=3000 => mono 2000
	frames := 8000
	samples := make([]int16, frames*2)
	for i := 0; i < frames; i++ {
		samples[i*2] = 1000
		samples[i*2+1] = 3000
	}

	wavData := buildWav(t, 8000, 2, samples)

	res, err := audio.Normalize(wavData, 8000)
	assert.NoError(err)

	assert.Len(res.PCM, frames*2)

	for i := 0; i < frames; i++ {
		v := int16(uint16(res.PCM[i*2]) | uint16(res.PCM[i*2+1])<<8)
		assert.EqualValues(2000, v)
	}
}

func TestNormalizeUnknownPassesThrough(t *testing.T) {
	assert := require.New(t)

	data := []byte("OggS this is definitely not wav or mp3")

	res, err := audio.Normalize(data, 16000)
	assert.NoError(err)

	assert.Equal(audio.PathPassthrough, res.Path)
	assert.Equal(data, res.PCM)
}

func TestNormalizeTruncatedWavFails(t *testing.T) {
	assert := require.New(t)

	wavData := buildWav(t, 16000, 1, sine(16000, 1))

	_, err := audio.Normalize(wavData[:20], 16000)
	assert.Error(err)
}

func TestNormalizeGarbageMp3Fails(t *testing.T) {
	assert := require.New(t)

	data := append([]byte("ID3"), bytes.Repeat([]byte{0x42}, 64)...)

	_, err := audio.Normalize(data, 16000)
	assert.Error(err)
}

func TestNormalizeEmptyInputPassesThrough(t *testing.T) {
	assert := require.New(t)

	res, err := audio.Normalize(nil, 16000)
	assert.NoError(err)

	assert.Equal(audio.PathPassthrough, res.Path)
	assert.Empty(res.PCM)
}
