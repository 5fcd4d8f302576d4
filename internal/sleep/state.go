package sleep

// State is a stage of the sleep sequence
type State string

const (
	StateIdle           State = "idle"
	StateFadingOut      State = "fading_out"
	StateWaitingForFade State = "waiting_for_fade"
	StateSkipping       State = "skipping"
	StatePersisting     State = "persisting"
	StateResetting      State = "resetting"
)

// waitingForFade reports whether the fade signal or a cancel is accepted
func (s State) waitingForFade() bool {
	return s == StateFadingOut || s == StateWaitingForFade
}
