package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the services to mount. Nil services are skipped.
type RouterOptions struct {
	Auth     Mountable // /auth
	Password Mountable // /password
	Profile  Mountable // /profile
}

// Router mounts the account services.
//
//	r := chi.NewRouter()
//	r.Mount("/", account.Router(account.RouterOptions{
//		Auth:    account.NewAuthService(idp),
//		Profile: account.NewProfileService(idp, store),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Auth != nil {
		r.Mount("/auth", opts.Auth.Handle())
	}
	if opts.Password != nil {
		r.Mount("/password", opts.Password.Handle())
	}
	if opts.Profile != nil {
		r.Mount("/profile", opts.Profile.Handle())
	}

	return r
}
