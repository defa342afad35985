package system

// AudioPlayer plays one-shot effects, satisfied by *audio.Engine
type AudioPlayer interface {
	PlayFail()
	PlayCollect()
	PlayDodge()
	PlayCombo(combo int)
	PlayGameOver()
	PlaySuccess()
	PlayClick()
	PlayPowerUp()
}

// MusicPlayer drives the music clock, satisfied by *audio.Engine
type MusicPlayer interface {
	StartMusic()
	StopMusic()
	PauseMusic()
	ResumeMusic()
	SetIntensity(x float64)
}
