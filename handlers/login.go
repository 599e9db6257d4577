package handlers

import (
	"trivia/domain"
	"trivia/wire"
)

// LoginHandler is the initial state for every connection; it accepts only
// Login and Signup.
type LoginHandler struct {
	factory *Factory
}

func (h *LoginHandler) Relevant(info RequestInfo) bool {
	switch info.Request.Kind {
	case wire.ReqLogin, wire.ReqSignup:
		return true
	default:
		return false
	}
}

func (h *LoginHandler) Handle(info RequestInfo) (wire.Response, Handler, error) {
	switch info.Request.Kind {
	case wire.ReqSignup:
		return h.handleSignup(info.Request.Signup)
	case wire.ReqLogin:
		return h.handleLogin(info.Request.Login)
	default:
		return irrelevantResponse(), nil, nil
	}
}

func (h *LoginHandler) handleSignup(p *wire.SignupPayload) (wire.Response, Handler, error) {
	u, err := domain.NewUsername(p.Username)
	if err == nil {
		var pw domain.Password
		var email domain.Email
		var phone domain.PhoneNumber
		var bd domain.BirthDate
		if pw, err = domain.NewPassword(p.Password); err == nil {
			if email, err = domain.NewEmail(p.Email); err == nil {
				if phone, err = domain.NewPhoneNumber(p.Phone); err == nil {
					if bd, err = domain.NewBirthDate(p.BirthDate); err == nil {
						err = h.factory.Login.Signup(u, pw, email, phone, p.Address, bd)
					}
				}
			}
		}
	}
	return wire.Response{Kind: wire.RespSignup, Err: wire.NewErrorInfo(err)}, nil, nil
}

func (h *LoginHandler) handleLogin(p *wire.LoginPayload) (wire.Response, Handler, error) {
	u, err := domain.NewUsername(p.Username)
	if err == nil {
		var pw domain.Password
		if pw, err = domain.NewPassword(p.Password); err == nil {
			err = h.factory.Login.Login(u, pw)
		}
	}
	if err != nil {
		return wire.Response{Kind: wire.RespLogin, Err: wire.NewErrorInfo(err)}, nil, nil
	}
	next := &MenuHandler{factory: h.factory, user: u}
	return wire.Response{Kind: wire.RespLogin}, next, nil
}
