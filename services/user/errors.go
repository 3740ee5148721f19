package user

// AccountDisabledError signals a sign-in attempt against a deactivated
// account. Handlers map it to 403 rather than the generic 401.
type AccountDisabledError struct {
	Email string
}

func (e AccountDisabledError) Error() string {
	return "account is deactivated: " + e.Email
}

// DuplicateEmailError signals a registration against an email that already
// has an account.
type DuplicateEmailError struct {
	Email string
}

func (e DuplicateEmailError) Error() string {
	return "an account with this email already exists"
}
