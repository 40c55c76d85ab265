package domain

// Notifier delivers best-effort notifications. Implementations must
// not be relied on for correctness: a failed Notify never rolls back
// the write that triggered it.
type Notifier interface {
	Notify(to, subject, body string) error
}
