// Package audio turns a figure's parameters into sound: the left
// channel plays a tone at base pitch times freq_x, the right channel at
// base pitch times freq_y, each offset by its axis phase. A closing
// figure is heard as a steady musical interval.
package audio

import (
	"math"
	"sync"

	"github.com/curvelab/lissalab/internal/curve"
	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// BasePitch is the audible frequency of a unit-frequency axis.
	BasePitch = 220.0
)

type Player struct {
	stream *portaudio.Stream

	mu     sync.Mutex
	params curve.Params
	gain   float64

	phaseL float64
	phaseR float64

	active bool
}

func NewPlayer(p curve.Params) *Player {
	return &Player{params: p, gain: 0.3}
}

func (a *Player) Start() error {
	if a.active {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	a.stream = stream
	a.active = true
	return nil
}

func (a *Player) Stop() {
	if !a.active {
		return
	}
	if a.stream != nil {
		a.stream.Stop()
		a.stream.Close()
		a.stream = nil
	}
	portaudio.Terminate()
	a.active = false
}

func (a *Player) Active() bool { return a.active }

// SetParams retunes the oscillators. Safe to call from the render loop
// while the stream is running.
func (a *Player) SetParams(p curve.Params) {
	a.mu.Lock()
	a.params = p
	a.mu.Unlock()
}

func (a *Player) SetGain(g float64) {
	a.mu.Lock()
	a.gain = math.Max(0, math.Min(1, g))
	a.mu.Unlock()
}

func (a *Player) process(in []float32, out [][]float32) {
	a.mu.Lock()
	p := a.params
	gain := a.gain
	a.mu.Unlock()

	stepL := curve.TwoPi * BasePitch * p.FreqX / SampleRate
	stepR := curve.TwoPi * BasePitch * p.FreqY / SampleRate

	for i := range out[0] {
		out[0][i] = float32(gain * p.AmpX * math.Sin(a.phaseL+p.PhaseX))
		out[1][i] = float32(gain * p.AmpY * math.Sin(a.phaseR+p.PhaseY))
		a.phaseL = curve.WrapPhase(a.phaseL + stepL)
		a.phaseR = curve.WrapPhase(a.phaseR + stepR)
	}
}
