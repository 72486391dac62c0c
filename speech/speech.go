// Package speech is the best-effort spoken alert channel: a configurable
// text-to-speech command with a synthesized-tone fallback, so an alert is
// never silently dropped for lack of speech support.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyHigh
)

var ErrSpeechDisabled = errors.New("speech: no tts command configured")

type Speaker interface {
	// Speak synthesizes text at the given volume (0.1-1.0) and rate
	// (0.5-1.5). Bounded by a hard timeout since synthesis can hang on
	// some platforms.
	Speak(ctx context.Context, text string, volume, rate float64) error

	// PlayTone plays an attention tone sequence. Fire and forget.
	PlayTone(urgency Urgency, volume float64)
}

// CommandSpeaker shells out to an espeak-style command. An empty command
// means speech is unavailable and every Speak call fails fast, leaving the
// tone fallback to the caller.
type CommandSpeaker struct {
	Command string
	Timeout time.Duration
	Logger  *zap.SugaredLogger
}

func (c *CommandSpeaker) Speak(ctx context.Context, text string, volume, rate float64) error {
	if c.Command == "" {
		return ErrSpeechDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	// espeak: -a amplitude 0..200, -s words per minute (175 = normal)
	amplitude := strconv.Itoa(int(volume * 200))
	wpm := strconv.Itoa(int(rate * 175))

	cmd := exec.CommandContext(ctx, c.Command, "-a", amplitude, "-s", wpm, text)

	err := cmd.Run()

	if err != nil {
		return fmt.Errorf("speech: synthesis failed: %w", err)
	}

	return nil
}

func (c *CommandSpeaker) PlayTone(urgency Urgency, volume float64) {
	playTone(urgency, volume, c.Logger)
}
