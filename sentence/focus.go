package sentence

// Focus marks the token standing in for the expected answer of a question.
//
// Base and Token hold the Id of the anchoring token. Both are kept because
// downstream consumers read one or the other.
type Focus struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
	Base  int `json:"base"`
	Token int `json:"token"`

	// Proxy is the base token Id of the focus this one replaced. Nil for foci
	// created upstream.
	Proxy *int `json:"proxy,omitempty"`
}

// NewFocus returns a focus whose span is exactly the span of tok.
func NewFocus(tok Token) Focus {
	return Focus{
		Begin: tok.Begin(),
		End:   tok.End(),
		Base:  tok.Id,
		Token: tok.Id,
	}
}

// NewProxyFocus returns a focus on tok that replaces the focus based on the
// token with Id of.
func NewProxyFocus(tok Token, of int) Focus {
	f := NewFocus(tok)
	f.Proxy = &of
	return f
}

// IsProxy reports whether the focus was created by replacing another one.
func (f Focus) IsProxy() bool {
	return f.Proxy != nil
}
