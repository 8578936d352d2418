package rules

// SignupTableName is the registry name of the built-in sign-up form
const SignupTableName = "signup"

// SignupRules returns the rule list of the account sign-up form
func SignupRules() []FieldRule {
	return []FieldRule{
		{Name: FieldUsername, Label: "username", Kind: KindPattern, Pattern: UsernamePattern},
		{Name: FieldEmail, Label: "email address", Kind: KindPattern, Pattern: EmailPattern},
		{Name: FieldPhone, Label: "phone number", Kind: KindPattern, Pattern: PhonePattern},
		{Name: FieldPassword, Label: "password", Kind: KindCompositePattern, Patterns: PasswordPatterns},
		{Name: GroupGender, Label: "gender", Kind: KindPresenceGroup},
		{
			Name:  GroupBirthday,
			Label: "birthday date",
			Kind:  KindPresenceGroup,
			Parts: []string{GroupBirthdayMonth, GroupBirthdayDay, GroupBirthdayYear},
		},
		{Name: GroupMusic, Label: "favorite music", Kind: KindPresenceGroup},
		{
			Name:    FieldPassword,
			Label:   "password",
			Kind:    KindMatchPair,
			Match:   FieldConfirmPassword,
			Message: "Passwords do not match",
		},
	}
}

// SignupTable returns the built-in sign-up table
func SignupTable() *Table {
	return MustTable(SignupTableName, SignupRules())
}
