package model

// Admin is a dashboard administrator account.
type Admin struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	HashedPassword string `json:"-"`
}

// Passkey is the single shared secret members present when submitting
// handle/team requests. Only its bcrypt hash is stored.
type Passkey struct {
	KeyHash string `json:"-"`
}
