package engine

import "errors"

// Command rejections are local: state is untouched and the simulation
// keeps running. ErrBankrupt is the one fatal condition.
var (
	ErrUnknownStation    = errors.New("unknown station")
	ErrStationNotForSale = errors.New("station is not for sale")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameStation       = errors.New("origin and destination are the same station")
	ErrBankrupt          = errors.New("company is bankrupt")
)
