package engine

// Ledger is the single company balance. Debits and credits are whole
// operations; the balance may dip negative during a tick, but a negative
// balance observed at the end of a tick is fatal.
type Ledger struct {
	balance int
}

// NewLedger opens the books with the starting balance.
func NewLedger(initial int) *Ledger {
	return &Ledger{balance: initial}
}

// Balance returns the current funds.
func (l *Ledger) Balance() int {
	return l.balance
}

// Debit removes funds.
func (l *Ledger) Debit(amount int) {
	l.balance -= amount
}

// Credit adds funds.
func (l *Ledger) Credit(amount int) {
	l.balance += amount
}

// CanAfford reports whether a debit of amount keeps the balance at or
// above zero.
func (l *Ledger) CanAfford(amount int) bool {
	return l.balance-amount >= 0
}

// Insolvent reports the bankruptcy condition.
func (l *Ledger) Insolvent() bool {
	return l.balance < 0
}
