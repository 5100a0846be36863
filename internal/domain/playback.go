package domain

// PlaybackState is owned outside the player view. The view reads it and
// emits intents through the mutators; it never holds its own copy.
//
// Times are in seconds. The owner decides whether CurrentTime may exceed
// Duration.
type PlaybackState interface {
	Duration() float64
	CurrentTime() float64
	UpdateCurrentTime(t float64) error

	Playing() bool
	TogglePlaying()

	Muted() bool
	ToggleMuted()
}
