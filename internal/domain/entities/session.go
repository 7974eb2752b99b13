package entities

// Session is the explicit session context handed to every protected component.
//
// The zero value is Absent.
type Session struct {
	token string
}

// AbsentSession returns a session with no credential.
func AbsentSession() Session {
	return Session{}
}

// PresentSession wraps a credential. An empty token is still Absent.
func PresentSession(token string) Session {
	return Session{token: token}
}

func (s Session) Present() bool {
	return s.token != ""
}

// Token returns the credential and whether it is present.
func (s Session) Token() (string, bool) {
	return s.token, s.token != ""
}
