package core

// Vocabulary maps a format's action codes to canonical kinds.
// Matching is case-sensitive.
type Vocabulary map[string]Kind

// Classify returns the kind for code, or an *UnsupportedError carrying the
// literal code when it is outside the vocabulary.
func (v Vocabulary) Classify(code string) (Kind, error) {
	if k, ok := v[code]; ok {
		return k, nil
	}
	return "", &UnsupportedError{What: "transaction type", Value: code}
}

// CheckStatus ignores rows whose status is not the single accepted value.
func CheckStatus(status, accepted string) error {
	if status != accepted {
		return &UnsupportedError{What: "status type", Value: status}
	}
	return nil
}
