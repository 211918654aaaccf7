package services

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by the mission lifecycle and reward ledger.
// Controllers map these onto 4xx responses.
var (
	ErrMissionNotFound = errors.New("mission not found")
	ErrRewardNotFound  = errors.New("reward not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyActive   = errors.New("mission already started")
	ErrNotStarted      = errors.New("mission not started")
	ErrRewardInactive  = errors.New("reward is no longer available")
	ErrOutOfStock      = errors.New("reward out of stock")
)

// InsufficientBalanceError reports how many coins were required versus held
type InsufficientBalanceError struct {
	Required  int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient green coins: required %d, available %d", e.Required, e.Available)
}
