package tts_test

import (
	"context"
	"testing"

	"app/pkg/tts"

	"github.com/stretchr/testify/require"
)

func TestDemoProviderLength(t *testing.T) {
	assert := require.New(t)

	provider := tts.NewDemoProvider()

	for _, rate := range []int{8000, 16000, 22050, 24000, 44100} {
		aud, err := provider.Synthesize(context.Background(), &tts.Request{Text: "anything", SampleRate: rate})
		assert.NoError(err)

		// 2 seconds of 16-bit mono
		assert.Len(aud.Data, rate*2*2)
		assert.True(aud.PCM)
	}
}

func TestDemoProviderDeterministic(t *testing.T) {
	assert := require.New(t)

	provider := tts.NewDemoProvider()

	a, err := provider.Synthesize(context.Background(), &tts.Request{Text: "a", SampleRate: 16000})
	assert.NoError(err)

	b, err := provider.Synthesize(context.Background(), &tts.Request{Text: "b", SampleRate: 16000})
	assert.NoError(err)

	assert.Equal(a.Data, b.Data)
}

func TestDemoProviderNotSilence(t *testing.T) {
	assert := require.New(t)

	provider := tts.NewDemoProvider()

	aud, err := provider.Synthesize(context.Background(), &tts.Request{Text: "tone", SampleRate: 8000})
	assert.NoError(err)

	nonZero := 0
	for _, b := range aud.Data {
		if b != 0 {
			nonZero++
		}
	}

	assert.Greater(nonZero, len(aud.Data)/2)
}
