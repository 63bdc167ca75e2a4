package dto

// CredentialsRequest carries the form-encoded username/password pair used by
// both the join and login endpoints.
type CredentialsRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}
