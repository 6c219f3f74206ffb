package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/userkit/handler"
	"github.com/dmitrymomot/userkit/pkg/attribute"
	"github.com/dmitrymomot/userkit/pkg/identity"
	"github.com/dmitrymomot/userkit/pkg/logger"
	"github.com/dmitrymomot/userkit/pkg/validator"
	"github.com/dmitrymomot/userkit/svc/auth"
)

// AuthService handles registration and sessions.
type AuthService struct {
	idp  identity.Provider
	opts *options
}

func NewAuthService(idp identity.Provider, opts ...Option) *AuthService {
	return &AuthService{idp: idp, opts: newOptions(opts)}
}

func (s *AuthService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		s.opts.public(r)
		r.Post("/sign-up", jsonRoute(s.opts, s.signUp))
		r.Post("/confirm", jsonRoute(s.opts, s.confirm))
		r.Post("/confirm-manually", jsonRoute(s.opts, s.confirmManually))
		r.Post("/sign-in", jsonRoute(s.opts, s.signIn))
		r.Post("/refresh", jsonRoute(s.opts, s.refresh))
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.idp, auth.WithLogger(s.opts.log)))
		r.Post("/sign-out", route(s.opts, s.signOut))
	})

	return r
}

type SignUpRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Gender      string `json:"gender"`
	TimeZone    string `json:"timeZone"`
	Birthdate   string `json:"birthdate"`
	Picture     string `json:"picture"`
}

// signUp registers the user and picks the confirmation hint based on whether
// the pool verifies emails itself.
func (s *AuthService) signUp(ctx handler.Context, req SignUpRequest) handler.Response {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return handler.Fail(ErrSignUpFieldsRequired)
	}

	now := s.opts.now()
	attrs, err := attribute.Build(attribute.Profile{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		TimeZone:    req.TimeZone,
		Birthdate:   req.Birthdate,
		Picture:     req.Picture,
	}, now)
	if err != nil {
		return handler.Fail(err)
	}
	if err := validator.ValidateAt(now, validator.FieldPassword.With(req.Password)); err != nil {
		return handler.Fail(err)
	}

	if _, err := s.idp.SignUp(ctx, req.Email, req.Password, attrs); err != nil {
		return handler.Fail(err)
	}

	autoVerified, err := s.idp.IsAutoVerified(ctx, attribute.KeyEmail.Canonical())
	if err != nil {
		return handler.Fail(err)
	}

	s.opts.log.InfoContext(ctx, "user signed up",
		logger.Event("sign_up"),
		logger.Email(req.Email),
	)

	if autoVerified {
		return handler.JSON(msgSignUpVerifyEmail)
	}
	return handler.JSON(msgSignUpConfirm)
}

type ConfirmRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (s *AuthService) confirm(ctx handler.Context, req ConfirmRequest) handler.Response {
	if err := validator.ValidateAt(s.opts.now(),
		validator.FieldEmail.With(req.Email),
		validator.FieldCode.With(req.Code),
	); err != nil {
		return handler.Fail(err)
	}

	if err := s.idp.ConfirmSignUp(ctx, req.Email, req.Code); err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(msgAccountConfirmed)
}

type ConfirmManuallyRequest struct {
	Email string `json:"email"`
}

// confirmManually is for pools that do not verify email themselves; the
// caller is expected to have verified the address out of band.
func (s *AuthService) confirmManually(ctx handler.Context, req ConfirmManuallyRequest) handler.Response {
	if err := validator.ValidateAt(s.opts.now(), validator.FieldEmail.With(req.Email)); err != nil {
		return handler.Fail(err)
	}

	if err := s.idp.ConfirmSignUpAdmin(ctx, req.Email); err != nil {
		return handler.Fail(err)
	}

	s.opts.log.InfoContext(ctx, "account confirmed administratively",
		logger.Event("confirm_manually"),
		logger.Email(req.Email),
	)
	return handler.JSON(msgAccountConfirmed)
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) signIn(ctx handler.Context, req SignInRequest) handler.Response {
	if err := validator.ValidateAt(s.opts.now(),
		validator.FieldEmail.With(req.Email),
		validator.FieldPassword.With(req.Password),
	); err != nil {
		return handler.Fail(err)
	}

	tokens, err := s.idp.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(msgSignedIn, handler.WithPayload("tokens", tokens))
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *AuthService) refresh(ctx handler.Context, req RefreshRequest) handler.Response {
	if req.RefreshToken == "" {
		return handler.Fail(ErrRefreshTokenRequired)
	}

	tokens, err := s.idp.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(msgTokenRefreshed, handler.WithPayload("tokens", tokens))
}

func (s *AuthService) signOut(ctx handler.Context, _ struct{}) handler.Response {
	token := auth.TokenFromContext(ctx)
	if token == "" {
		return handler.Fail(ErrMissingIdentity)
	}

	if err := s.idp.SignOut(ctx, token); err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(msgSignedOut)
}
