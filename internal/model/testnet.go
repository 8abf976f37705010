package model

// Testnet is a tracked entity in the directory catalog. Owned by the admin
// console; this service treats it as read-only.
type Testnet struct {
	ID         int64
	Slug       string
	Name       string
	Categories []string
	Tags       []string
	Network    string
}
