package rules

// Sign-up form field names
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldPassword        = "enterPass"
	FieldConfirmPassword = "confirmPass"
	GroupGender          = "gender"
	GroupBirthday        = "birthday"
	GroupBirthdayMonth   = "birthday__month"
	GroupBirthdayDay     = "birthday__day"
	GroupBirthdayYear    = "birthday__year"
	GroupMusic           = "music"
)

// Patterns used by the sign-up table
const (
	// Username: 4-12 lowercase letters or digits
	UsernamePattern = `^[a-z0-9]{4,12}$`

	// Email: word characters, @, letters, then .com/.net/.org/.edu
	EmailPattern = `^\w+@[a-zA-Z]+(.com|.net|.org|.edu)$`

	// Phone: ###-###-#### anywhere in the value
	PhonePattern = `\d{3}-\d{3}-\d{4}`

	PasswordSymbolPattern    = `[!@#$%^&*(),.?":{}|<>]+`
	PasswordUppercasePattern = `[A-Z]+`
	PasswordLowercasePattern = `[a-z]+`
	PasswordDigitPattern     = `\d+`
)

// PasswordPatterns are the requirements a password must meet simultaneously
var PasswordPatterns = []string{
	PasswordSymbolPattern,
	PasswordUppercasePattern,
	PasswordLowercasePattern,
	PasswordDigitPattern,
}
