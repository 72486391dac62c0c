package speech

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"
)

const (
	toneSampleRate = 44100
	toneChannels   = 1
)

// Global audio context singleton, hardware init is expensive and oto only
// allows one context per process
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

func initAudioContext(logger *zap.SugaredLogger) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   toneSampleRate,
			ChannelCount: toneChannels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)

		if err != nil {
			if logger != nil {
				logger.Error("Failed to initialize audio context", zap.Error(err))
			}
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
	})
}

// beep describes one segment of a tone sequence. A zero frequency is a rest.
type beep struct {
	freq float64
	dur  time.Duration
}

func toneSequence(urgency Urgency) []beep {
	switch urgency {
	case UrgencyHigh:
		return []beep{
			{880, 180 * time.Millisecond},
			{0, 80 * time.Millisecond},
			{880, 180 * time.Millisecond},
			{0, 80 * time.Millisecond},
			{1046, 260 * time.Millisecond},
		}
	default:
		return []beep{
			{660, 250 * time.Millisecond},
		}
	}
}

// synthesize renders a beep sequence to int16 little-endian PCM. Volume is
// clamped to [0, 1]; a short linear fade at segment edges avoids clicks.
func synthesize(seq []beep, volume float64) []byte {
	volume = math.Max(0, math.Min(1, volume))

	var buf bytes.Buffer

	for _, b := range seq {
		n := int(float64(toneSampleRate) * b.dur.Seconds())
		fade := toneSampleRate / 200 // 5ms

		for i := 0; i < n; i++ {
			var sample float64

			if b.freq > 0 {
				sample = math.Sin(2 * math.Pi * b.freq * float64(i) / toneSampleRate)

				env := 1.0
				if i < fade {
					env = float64(i) / float64(fade)
				} else if n-i < fade {
					env = float64(n-i) / float64(fade)
				}

				sample *= env * volume
			}

			binary.Write(&buf, binary.LittleEndian, int16(sample*math.MaxInt16))
		}
	}

	return buf.Bytes()
}

func playTone(urgency Urgency, volume float64, logger *zap.SugaredLogger) {
	initAudioContext(logger)

	if !audioCtxReady || globalAudioCtx == nil {
		if logger != nil {
			logger.Warn("Audio context not ready, dropping tone")
		}
		return
	}

	pcm := synthesize(toneSequence(urgency), volume)

	go func() {
		player := globalAudioCtx.NewPlayer(bytes.NewReader(pcm))
		player.Play()

		for player.IsPlaying() {
			time.Sleep(time.Millisecond)
		}

		err := player.Close()

		if err != nil && logger != nil {
			logger.Error("Failed to close audio player", zap.Error(err))
		}
	}()
}
