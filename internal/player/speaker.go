package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// outputSampleRate is the rate the speaker is initialised with; streams at
// other rates are resampled.
const outputSampleRate = beep.SampleRate(44100)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(outputSampleRate, outputSampleRate.N(time.Second/10))
	})
	return speakerErr
}
