package entity

// User is the aggregate root for the account domain.
//
// Password is stored and compared as a plain string by design: the store
// is fully client-trusted and securing it is an explicit non-goal.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}
