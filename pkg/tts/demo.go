package tts

import (
	"context"
	"math"
)

const (
	demoDurationSeconds = 2
	demoFrequencyHz     = 440
	demoAmplitude       = 16383
)

// DemoProvider fabricates a fixed tone instead of calling anything, so
// integration tests can run without provider credentials.
type DemoProvider struct{}

func NewDemoProvider() *DemoProvider {
	return &DemoProvider{}
}

func (p *DemoProvider) Name() string {
	return "demo"
}

// Synthesize returns demoDurationSeconds of a 440Hz sine as raw 16-bit LE
// mono PCM at the requested rate. Output length is always
// sampleRate * demoDurationSeconds * 2 bytes.
func (p *DemoProvider) Synthesize(_ context.Context, req *Request) (*Audio, error) {
	numSamples := req.SampleRate * demoDurationSeconds

	pcm := make([]byte, numSamples*2)
	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(req.SampleRate)
		sample := int16(demoAmplitude * math.Sin(2*math.Pi*demoFrequencyHz*t))

		pcm[i*2] = byte(sample)
		pcm[i*2+1] = byte(uint16(sample) >> 8)
	}

	return &Audio{Data: pcm, PCM: true}, nil
}

func (p *DemoProvider) ListVoices(_ context.Context) ([]Voice, error) {
	return []Voice{{
		ID:   "demo",
		Name: "demo sine tone",
	}}, nil
}
