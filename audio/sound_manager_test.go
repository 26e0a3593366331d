package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestChirpGeneratorRangeAndFade(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 10 * time.Millisecond
	gen := NewChirpGenerator(rate, 440, 880, d)

	samples := make([][2]float64, rate.N(d)+10)
	n, ok := gen.Stream(samples)

	if !ok || n != len(samples) {
		t.Fatalf("Expected %d samples ok, got %d %v", len(samples), n, ok)
	}
	for i := 0; i < n; i++ {
		if math.Abs(samples[i][0]) > 0.2 {
			t.Fatalf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Fatalf("Sample %d not mono: %v", i, samples[i])
		}
	}
	// Past the sweep the envelope is closed
	if last := samples[n-1][0]; last != 0 {
		t.Errorf("Expected silence after sweep, got %f", last)
	}
	if gen.Err() != nil {
		t.Errorf("Unexpected error %v", gen.Err())
	}
}

func TestBuzzGeneratorAttack(t *testing.T) {
	rate := beep.SampleRate(44100)
	gen := NewBuzzGenerator(rate, 120)

	samples := make([][2]float64, 2000)
	n, ok := gen.Stream(samples)
	if !ok || n != 2000 {
		t.Fatalf("Expected 2000 samples, got %d %v", n, ok)
	}

	if samples[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", samples[0][0])
	}
	for i := 0; i < n; i++ {
		if math.Abs(samples[i][0]) > 1 {
			t.Fatalf("Sample %d out of range: %f", i, samples[i][0])
		}
	}
}

func TestTakeLimitsCueLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	want := rate.N(spawnDuration)
	s := beep.Take(want, NewChirpGenerator(rate, 660, 1320, spawnDuration))

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}

	if total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager()
	sm.PlaySpawn()
	sm.PlayExhausted()
	sm.Cleanup()

	if sm.mixer.Len() != 0 {
		t.Errorf("Expected empty mixer, got %d streamers", sm.mixer.Len())
	}
}
