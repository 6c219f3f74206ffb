package account

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/userkit/handler"
	"github.com/dmitrymomot/userkit/pkg/email"
	"github.com/dmitrymomot/userkit/pkg/email/templates"
	"github.com/dmitrymomot/userkit/pkg/identity"
	"github.com/dmitrymomot/userkit/pkg/logger"
	"github.com/dmitrymomot/userkit/pkg/validator"
	"github.com/dmitrymomot/userkit/svc/auth"
)

// CodeIssuer issues and checks one-time reset codes. *otp.Service
// implements it.
type CodeIssuer interface {
	Issue(ctx context.Context, subject string) (string, error)
	Verify(ctx context.Context, subject, code string) error
	TTL() time.Duration
}

// PasswordService handles both reset flows: the provider's own code flow
// under /forgot and the one-time-code flow under /otp, which verifies a
// locally issued code and sets the password administratively.
type PasswordService struct {
	idp    identity.Provider
	codes  CodeIssuer
	mailer email.EmailSender
	opts   *options
}

// NewPasswordService wires the service. The /otp routes are only mounted when
// both codes and mailer are non-nil.
func NewPasswordService(idp identity.Provider, codes CodeIssuer, mailer email.EmailSender, opts ...Option) *PasswordService {
	return &PasswordService{
		idp:    idp,
		codes:  codes,
		mailer: mailer,
		opts:   newOptions(opts),
	}
}

func (s *PasswordService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		s.opts.public(r)
		r.Post("/forgot", jsonRoute(s.opts, s.forgot))
		r.Post("/forgot/confirm", jsonRoute(s.opts, s.confirmForgot))

		if s.codes != nil && s.mailer != nil {
			r.Post("/otp", jsonRoute(s.opts, s.sendResetCode))
			r.Post("/otp/confirm", jsonRoute(s.opts, s.resetWithCode))
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.idp, auth.WithLogger(s.opts.log)))
		r.Post("/change", jsonRoute(s.opts, s.change))
	})

	return r
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (s *PasswordService) forgot(ctx handler.Context, req ForgotPasswordRequest) handler.Response {
	if err := validator.ValidateAt(s.opts.now(), validator.FieldEmail.With(req.Email)); err != nil {
		return handler.Fail(err)
	}

	if err := s.idp.ForgotPassword(ctx, req.Email); err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(msgForgotPassword)
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (r ResetPasswordRequest) validate(now time.Time) error {
	return validator.ValidateAt(now,
		validator.FieldEmail.With(r.Email),
		validator.FieldCode.With(r.Code),
		validator.FieldNewPassword.With(r.NewPassword),
	)
}

func (s *PasswordService) confirmForgot(ctx handler.Context, req ResetPasswordRequest) handler.Response {
	if err := req.validate(s.opts.now()); err != nil {
		return handler.Fail(err)
	}

	if err := s.idp.ConfirmForgotPassword(ctx, req.Email, req.Code, req.NewPassword); err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(msgPasswordReset)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *PasswordService) change(ctx handler.Context, req ChangePasswordRequest) handler.Response {
	if err := validator.ValidateAt(s.opts.now(),
		validator.FieldCurrentPassword.With(req.CurrentPassword),
		validator.FieldNewPassword.With(req.NewPassword),
	); err != nil {
		return handler.Fail(err)
	}

	if err := s.idp.ChangePassword(ctx, auth.TokenFromContext(ctx), req.CurrentPassword, req.NewPassword); err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(msgPasswordChanged)
}

func (s *PasswordService) sendResetCode(ctx handler.Context, req ForgotPasswordRequest) handler.Response {
	if err := validator.ValidateAt(s.opts.now(), validator.FieldEmail.With(req.Email)); err != nil {
		return handler.Fail(err)
	}

	code, err := s.codes.Issue(ctx, req.Email)
	if err != nil {
		return handler.Fail(err)
	}

	body, err := templates.Render(ctx, templates.PasswordResetCode(code, s.codes.TTL()))
	if err != nil {
		return handler.Fail(err)
	}

	if err := s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   req.Email,
		Subject:  templates.PasswordResetSubject,
		BodyHTML: body,
		Tag:      "password-reset",
	}); err != nil {
		return handler.Fail(err)
	}

	s.opts.log.InfoContext(ctx, "password reset code sent",
		logger.Event("password_reset_code_sent"),
		logger.Email(req.Email),
	)
	return handler.JSON(msgResetCodeSent)
}

func (s *PasswordService) resetWithCode(ctx handler.Context, req ResetPasswordRequest) handler.Response {
	if err := req.validate(s.opts.now()); err != nil {
		return handler.Fail(err)
	}

	if err := s.codes.Verify(ctx, req.Email, req.Code); err != nil {
		return handler.Fail(err)
	}

	if err := s.idp.SetPassword(ctx, req.Email, req.NewPassword); err != nil {
		return handler.Fail(err)
	}

	s.opts.log.InfoContext(ctx, "password reset with one-time code",
		logger.Event("password_reset"),
		logger.Email(req.Email),
	)
	return handler.JSON(msgPasswordResetOTP)
}
