package parameter

import "time"

// Tempo and Timing
const (
	BaseBPM       = 100 // BPM at intensity 0
	BPMRange      = 60  // Added BPM at intensity 1
	StepsPerBeat  = 4   // 16th notes
	StepsPerCycle = 16  // One bar of 4/4

	// DenseBassThreshold is the intensity above which the alternating bass mask is used
	DenseBassThreshold = 0.7

	// ArpeggioEvery is the step stride of lead arpeggio triggers
	ArpeggioEvery = 4

	// OpenHatStep is the step (mod 8) where the hi-hat opens
	OpenHatStep = 6
)

// StepInterval returns the 16th-note clock period for a tempo: 60/bpm/4 seconds
func StepInterval(bpm int) time.Duration {
	if bpm <= 0 {
		bpm = BaseBPM
	}
	return time.Duration(float64(time.Second) * 60 / float64(bpm) / StepsPerBeat)
}

// Pitch
const (
	MusicRootNote = 45 // A2
	BassOctave    = -12
	LeadOctave    = 24
)

// Instrument Envelopes (seconds)
const (
	BassAttack  = 0.005
	BassDecay   = 0.12
	BassSustain = 0.4
	BassRelease = 0.08
	BassLength  = 0.18

	LeadAttack  = 0.01
	LeadDecay   = 0.08
	LeadSustain = 0.5
	LeadRelease = 0.12
	LeadLength  = 0.2

	KickLength      = 0.25
	SnareLength     = 0.18
	HatClosedLength = 0.05
	HatOpenLength   = 0.22
)

// Voice gains on the music bus
const (
	KickGain  = 0.9
	SnareGain = 0.5
	HatGain   = 0.25
	BassGain  = 0.45
	LeadGain  = 0.3
)
