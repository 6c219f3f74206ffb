package account

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/userkit/handler"
	"github.com/dmitrymomot/userkit/pkg/attribute"
	"github.com/dmitrymomot/userkit/pkg/identity"
	"github.com/dmitrymomot/userkit/pkg/logger"
	"github.com/dmitrymomot/userkit/pkg/storage"
	"github.com/dmitrymomot/userkit/pkg/validator"
	"github.com/dmitrymomot/userkit/svc/auth"
)

// ProfileService serves the signed-in user's profile and picture. Every
// route requires a bearer token.
type ProfileService struct {
	idp     identity.Provider
	storage storage.Storage
	opts    *options
}

func NewProfileService(idp identity.Provider, store storage.Storage, opts ...Option) *ProfileService {
	return &ProfileService{idp: idp, storage: store, opts: newOptions(opts)}
}

func (s *ProfileService) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(auth.Middleware(s.idp, auth.WithLogger(s.opts.log)))

	r.Get("/", route(s.opts, s.get))
	r.Patch("/", jsonRoute(s.opts, s.update))
	r.Delete("/", route(s.opts, s.delete))

	r.Post("/picture/upload-url", jsonRoute(s.opts, s.uploadURL))
	r.Post("/picture", jsonRoute(s.opts, s.savePicture))
	r.Get("/picture/url", route(s.opts, s.pictureURL))

	return r
}

// get returns the identity resolved by the auth middleware.
func (s *ProfileService) get(ctx handler.Context, _ struct{}) handler.Response {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return handler.Fail(ErrMissingIdentity)
	}
	return handler.JSON(msgUserRetrieved, handler.WithPayload("user", user))
}

// UpdateProfileRequest is sparse: empty fields are left unchanged. Email is
// not updatable here.
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Gender      string `json:"gender"`
	TimeZone    string `json:"timeZone"`
	Birthdate   string `json:"birthdate"`
	Picture     string `json:"picture"`
}

func (s *ProfileService) update(ctx handler.Context, req UpdateProfileRequest) handler.Response {
	attrs, err := attribute.Build(attribute.Profile{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		TimeZone:    req.TimeZone,
		Birthdate:   req.Birthdate,
		Picture:     req.Picture,
	}, s.opts.now())
	if err != nil {
		return handler.Fail(err)
	}
	if req.Picture != "" {
		if err := s.checkOwnPicture(ctx, req.Picture); err != nil {
			return handler.Fail(err)
		}
	}

	if err := s.idp.UpdateAttributes(ctx, auth.TokenFromContext(ctx), attrs); err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(msgUserUpdated)
}

func (s *ProfileService) delete(ctx handler.Context, _ struct{}) handler.Response {
	if err := s.idp.DeleteUser(ctx, auth.TokenFromContext(ctx)); err != nil {
		return handler.Fail(err)
	}

	s.opts.log.InfoContext(ctx, "user deleted",
		logger.Event("delete_user"),
		logger.UserID(auth.UserFromContext(ctx).Sub()),
	)
	return handler.JSON(msgUserDeleted)
}

type UploadURLRequest struct {
	Filename string `json:"filename"`
	FileType string `json:"fileType"`
}

// uploadURL presigns a PUT for a new picture object. The returned pictureUrl
// is what the client later hands to savePicture.
func (s *ProfileService) uploadURL(ctx handler.Context, req UploadURLRequest) handler.Response {
	now := s.opts.now()
	if err := validator.ValidateAt(now,
		validator.FieldFilename.With(req.Filename),
		validator.FieldFileType.With(req.FileType),
	); err != nil {
		return handler.Fail(err)
	}

	key := storage.ProfilePictureKey(subject(auth.UserFromContext(ctx)), now, req.Filename)
	presigned, err := s.storage.UploadURL(ctx, key, req.FileType)
	if err != nil {
		return handler.Fail(err)
	}

	return handler.JSON(msgUploadURLGenerated,
		handler.WithPayload("uploadUrl", presigned.URL),
		handler.WithPayload("pictureUrl", s.storage.ObjectURL(key)),
		handler.WithPayload("expiresIn", presigned.ExpiresIn()),
	)
}

type SavePictureRequest struct {
	PictureURL string `json:"pictureUrl"`
}

// savePicture points the picture attribute at an uploaded object. Only
// objects under the caller's own prefix are accepted.
func (s *ProfileService) savePicture(ctx handler.Context, req SavePictureRequest) handler.Response {
	now := s.opts.now()
	if err := validator.ValidateAt(now, validator.FieldPicture.With(req.PictureURL)); err != nil {
		return handler.Fail(err)
	}

	if err := s.checkOwnPicture(ctx, req.PictureURL); err != nil {
		return handler.Fail(err)
	}

	attrs, err := attribute.Build(attribute.Profile{Picture: req.PictureURL}, now)
	if err != nil {
		return handler.Fail(err)
	}
	if err := s.idp.UpdateAttributes(ctx, auth.TokenFromContext(ctx), attrs); err != nil {
		return handler.Fail(err)
	}

	return handler.JSON(msgPictureUpdated, handler.WithPayload("pictureUrl", req.PictureURL))
}

// checkOwnPicture accepts only objects of this bucket under the caller's
// own picture prefix.
func (s *ProfileService) checkOwnPicture(ctx handler.Context, pictureURL string) error {
	key, err := s.storage.KeyFromURL(pictureURL)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(key, storage.ProfilePicturePrefix(subject(auth.UserFromContext(ctx)))) {
		return ErrForeignPicture
	}
	return nil
}

// pictureURL presigns a GET for the stored picture.
func (s *ProfileService) pictureURL(ctx handler.Context, _ struct{}) handler.Response {
	picture := auth.UserFromContext(ctx).Attribute(attribute.KeyPicture.Canonical())
	if picture == "" {
		return handler.Fail(ErrNoProfilePicture)
	}

	key, err := s.storage.KeyFromURL(picture)
	if err != nil {
		return handler.Fail(err)
	}

	presigned, err := s.storage.DownloadURL(ctx, key)
	if err != nil {
		return handler.Fail(err)
	}

	return handler.JSON(msgPictureURLGenerated,
		handler.WithPayload("presignedUrl", presigned.URL),
		handler.WithPayload("expiresIn", presigned.ExpiresIn()),
	)
}

// subject is the stable id used in object keys. The username stands in when
// the pool does not expose sub.
func subject(user *identity.User) string {
	if sub := user.Sub(); sub != "" {
		return sub
	}
	if user != nil {
		return user.Username
	}
	return ""
}
