package models

// Work a unit queued on the dispatcher. Name shows up in logs when the effector fails.
type Work struct {
	Name           string
	SuccessChannel chan any
	ErrorChannel   chan any
	Effector       func(successChannel chan any, errorChannel chan any)
}
