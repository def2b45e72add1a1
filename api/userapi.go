package api

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/threadcount/fulfillment/core/user"
)

type UserApi struct {
	service user.Service
}

func NewUserApi(service user.Service) *UserApi {
	return &UserApi{service: service}
}

func (a *UserApi) ConfigureRouter(r chi.Router) {
	r.Use(RequireRole(user.RoleAdmin))

	r.Post("/", a.Create)
	r.Route("/{username}", func(r chi.Router) {
		r.Get("/", a.Get)
		r.Delete("/", a.Delete)
	})
}

func (a *UserApi) Create(w http.ResponseWriter, r *http.Request) {
	data := &CreateUserRequestDto{}
	if err := render.Bind(r, data); err != nil {
		Render(w, r, ErrInvalidRequest(err))
		return
	}

	usr, err := a.service.Create(r.Context(), data.CreateUserRequest)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	Render(w, r, NewUserResponse(usr))
}

func (a *UserApi) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	usr, err := a.service.Get(r.Context(), username)
	if err != nil {
		RenderError(w, r, err)
		return
	}

	Render(w, r, NewUserResponse(usr))
}

func (a *UserApi) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := a.service.Delete(r.Context(), username); err != nil {
		RenderError(w, r, err)
		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}
