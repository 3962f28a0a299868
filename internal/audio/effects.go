package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Effect names a sound effect.
type Effect string

const (
	EffectJump      Effect = "jump"
	EffectScore     Effect = "score"
	EffectMilestone Effect = "milestone"
	EffectSpeedup   Effect = "speedup"
	EffectGameOver  Effect = "gameover"
	EffectStart     Effect = "start"

	// Start screen eye animations.
	EffectBlink    Effect = "blink"
	EffectWink     Effect = "wink"
	EffectLook     Effect = "look"
	EffectSurprise Effect = "surprise"
	EffectSleepy   Effect = "sleepy"
	EffectDizzy    Effect = "dizzy"
	EffectPeek     Effect = "peek"
	EffectHypno    Effect = "hypno"
	EffectBounce   Effect = "bounce"
	EffectNervous  Effect = "nervous"
	EffectSearch   Effect = "search"
	EffectFlirt    Effect = "flirt"
)

// Effects lists every known effect.
func Effects() []Effect {
	return []Effect{
		EffectJump, EffectScore, EffectMilestone, EffectSpeedup, EffectGameOver, EffectStart,
		EffectBlink, EffectWink, EffectLook, EffectSurprise, EffectSleepy, EffectDizzy,
		EffectPeek, EffectHypno, EffectBounce, EffectNervous, EffectSearch, EffectFlirt,
	}
}

type note struct {
	freq float64 // 0 is a rest
	dur  time.Duration
}

type envelopeShape struct {
	attack    time.Duration
	decay     float64 // fraction lost over the note
	floor     float64 // envelope never decays below this
	volume    float64
	symmetric bool // fade in and out by attack instead of decaying
}

var (
	chipShape  = envelopeShape{attack: 10 * time.Millisecond, decay: 0.3, floor: 0.5, volume: 0.73}
	doomShape  = envelopeShape{attack: 15 * time.Millisecond, decay: 0.6, floor: 0.2, volume: 0.73}
	cheerShape = envelopeShape{attack: 8 * time.Millisecond, decay: 0.4, floor: 0.4, volume: 0.73}
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Streamer builds a fresh streamer for e at the given sample rate and
// volume in [0, 1]. Unknown effects return nil.
func (e Effect) Streamer(sr beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch e {
	case EffectJump:
		s = squareSweep(sr, 600, 900, ms(80), 0.73, false)
	case EffectScore:
		s = notes(sr, []note{{523, ms(40)}, {659, ms(40)}, {784, ms(40)}}, envelopeShape{attack: 5 * time.Millisecond, volume: 0.73, symmetric: true})
	case EffectMilestone:
		s = notes(sr, []note{{523, ms(100)}, {659, ms(100)}, {784, ms(100)}, {1047, ms(250)}, {784, ms(80)}, {1047, ms(300)}}, cheerShape)
	case EffectSpeedup:
		s = squareSweep(sr, 300, 1100, ms(250), 0.6, true)
	case EffectGameOver:
		s = notes(sr, []note{
			{440, ms(200)}, {415, ms(200)}, {392, ms(200)}, {370, ms(250)}, {0, ms(150)},
			{330, ms(200)}, {311, ms(200)}, {294, ms(250)}, {0, ms(100)},
			{220, ms(500)}, {147, ms(600)},
		}, doomShape)
	case EffectStart:
		s = notes(sr, []note{{392, ms(120)}, {523, ms(120)}, {659, ms(150)}, {784, ms(250)}}, chipShape)
	case EffectBlink:
		s = arpeggio(sr, []float64{880, 660}, ms(60), 0.7)
	case EffectWink:
		s = arpeggio(sr, []float64{523, 659, 784}, ms(70), 0.75)
	case EffectLook:
		s = sineSweep(sr, 300, 800, ms(150), 0.65)
	case EffectSurprise:
		s = arpeggio(sr, []float64{392, 494, 587, 784}, ms(80), 0.8)
	case EffectSleepy:
		s = arpeggio(sr, []float64{523, 440, 349, 294}, ms(150), 0.6)
	case EffectDizzy:
		s = wobble(sr, 400, 8, ms(400), 0.65)
	case EffectPeek:
		s = arpeggio(sr, []float64{262, 330, 392, 523}, ms(80), 0.75)
	case EffectHypno:
		s = wobble(sr, 350, 4, ms(500), 0.6)
	case EffectBounce:
		s = sineSweep(sr, 200, 600, ms(120), 0.75)
	case EffectNervous:
		s = arpeggio(sr, []float64{440, 466, 440, 466, 440}, ms(50), 0.6)
	case EffectSearch:
		s = arpeggio(sr, []float64{392, 440, 392, 349}, ms(100), 0.65)
	case EffectFlirt:
		s = arpeggio(sr, []float64{523, 659, 784, 659, 523}, ms(80), 0.7)
	default:
		return nil
	}
	return withVolume(s, volume)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1)), Silent: false}
}

// synth streams n mono samples computed by f.
func synth(n int, f func(i int) float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		k := 0
		for k < len(samples) && pos < n {
			v := f(pos)
			samples[k][0], samples[k][1] = v, v
			k++
			pos++
		}
		return k, true
	})
}

func square(freq, t float64) float64 {
	if int(freq*t*2)%2 == 0 {
		return -1
	}
	return 1
}

// edge ramps the first and last fade seconds of an n-sample sound.
func edge(i, n int, sr beep.SampleRate, fade float64) float64 {
	return math.Min(1, float64(min(i, n-i))/(float64(sr)*fade))
}

// squareSweep is a square wave gliding from f0 to f1; accelerate makes the
// glide quadratic.
func squareSweep(sr beep.SampleRate, f0, f1 float64, d time.Duration, vol float64, accelerate bool) beep.Streamer {
	n := sr.N(d)
	fade := 0.01
	if accelerate {
		fade = 0.02
	}
	return synth(n, func(i int) float64 {
		t := float64(i) / float64(sr)
		p := float64(i) / float64(n)
		if accelerate {
			p *= p
		}
		f := f0 + (f1-f0)*p
		return vol * edge(i, n, sr, fade) * square(f, t)
	})
}

// notes plays a square-wave melody; each note gets its own attack and a
// linear decay down to the shape's floor.
func notes(sr beep.SampleRate, melody []note, shape envelopeShape) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(melody))
	offset := 0
	for _, nt := range melody {
		n := sr.N(nt.dur)
		start := offset
		freq := nt.freq
		offset += n
		if freq == 0 {
			parts = append(parts, beep.Silence(n))
			continue
		}
		parts = append(parts, synth(n, func(i int) float64 {
			t := float64(start+i) / float64(sr)
			if shape.symmetric {
				return shape.volume * edge(i, n, sr, shape.attack.Seconds()) * square(freq, t)
			}
			attack := math.Min(1, float64(i)/(float64(sr)*shape.attack.Seconds()))
			decay := math.Max(shape.floor, 1-float64(i)/float64(n)*shape.decay)
			return shape.volume * attack * decay * square(freq, t)
		}))
	}
	return beep.Seq(parts...)
}

// arpeggio mixes a sine with its octave for a softer retro voice.
func arpeggio(sr beep.SampleRate, freqs []float64, per time.Duration, vol float64) beep.Streamer {
	noteLen := sr.N(per)
	n := noteLen * len(freqs)
	return synth(n, func(i int) float64 {
		t := float64(i) / float64(sr)
		f := freqs[min(i/noteLen, len(freqs)-1)]
		pos := i % noteLen
		attack := math.Min(1, float64(pos)/(float64(sr)*0.008))
		decay := math.Max(0.3, 1-float64(pos)/float64(noteLen)*0.5)
		tone := 0.7*math.Sin(2*math.Pi*f*t) + 0.3*math.Sin(2*math.Pi*f*2*t)
		return vol * attack * decay * tone
	})
}

func sineSweep(sr beep.SampleRate, f0, f1 float64, d time.Duration, vol float64) beep.Streamer {
	n := sr.N(d)
	return synth(n, func(i int) float64 {
		t := float64(i) / float64(sr)
		f := f0 + (f1-f0)*float64(i)/float64(n)
		return vol * edge(i, n, sr, 0.015) * math.Sin(2*math.Pi*f*t)
	})
}

// wobble is a vibrato tone that fades out over its length.
func wobble(sr beep.SampleRate, base, rate float64, d time.Duration, vol float64) beep.Streamer {
	n := sr.N(d)
	return synth(n, func(i int) float64 {
		t := float64(i) / float64(sr)
		p := float64(i) / float64(n)
		f := base + 50*math.Sin(2*math.Pi*rate*t)
		return vol * math.Pow(1-p, 0.8) * math.Sin(2*math.Pi*f*t)
	})
}
