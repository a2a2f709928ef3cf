package models

// LoginResponseItem mirrors one element of the sign-in response array: the
// user's profile fields flattened alongside the issued token and a
// human-readable message.
type LoginResponseItem struct {
	User
	Token   string `json:"token"`
	Message string `json:"message"`
}

// LoginResult is what the exchange hands back to the session store on a
// successful sign-in.
type LoginResult struct {
	User    User
	Token   string
	Message string
}
