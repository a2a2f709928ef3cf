package models

// User is the profile of the signed-in principal as returned by the sign-in
// endpoint. It is immutable once loaded: replaced wholesale on login,
// cleared wholesale on logout. Field names mirror the backend's JSON keys.
type User struct {
	UserID      string `json:"UserID"`
	FirstName   string `json:"FirstName"`
	LastName    string `json:"LastName"`
	Email       string `json:"Email"`
	PhoneNumber string `json:"PhoneNumber"`
	RoleName    string `json:"RoleName"`
}
