package controllers

import (
	"errors"
	"net/http"

	"github.com/km-arc/go-ioc/app/repository"
	"github.com/km-arc/go-ioc/app/services"
	gohttp "github.com/km-arc/go-ioc/framework/http"
	"github.com/km-arc/go-ioc/framework/http/validation"
	"github.com/km-arc/go-ioc/framework/ioc"
)

// UserController serves the /api/users routes. It is registered as
// "userHandler".
type UserController struct {
	userService *services.UserService `inject:""`
}

func init() {
	ioc.Component[UserController](ioc.Named("userHandler"))
}

// Index handles GET /api/users.
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Success(c.userService.Users())
}

// Store handles POST /api/users.
func (c *UserController) Store(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	body, ok := bindUser(req, res)
	if !ok {
		return
	}
	user, err := c.userService.CreateUser(body.Name, body.Email)
	if !handled(res, err) {
		res.Created(user)
	}
}

// Update handles PUT /api/users/{id}.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	id, ok := userID(req, res)
	if !ok {
		return
	}
	body, ok := bindUser(req, res)
	if !ok {
		return
	}
	user, err := c.userService.UpdateUser(id, body.Name, body.Email)
	if !handled(res, err) {
		res.Success(user)
	}
}

// Destroy handles DELETE /api/users/{id}.
func (c *UserController) Destroy(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	id, ok := userID(req, res)
	if !ok {
		return
	}
	if !handled(res, c.userService.DeleteUser(id)) {
		res.Raw().WriteHeader(http.StatusNoContent)
	}
}

// Show handles GET /api/users/{id}.
func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	id, ok := userID(req, res)
	if !ok {
		return
	}
	user, err := c.userService.GetUserByID(id)
	if !handled(res, err) {
		res.Success(user)
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

type userInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// bindUser decodes and validates the request body, answering 400 or 422 on
// failure.
func bindUser(req *gohttp.Request, res *gohttp.Response) (userInput, bool) {
	var body userInput
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return body, false
	}

	v := validation.Make(map[string]string{
		"name":  body.Name,
		"email": body.Email,
	}, validation.Rules{
		"name":  "required|min:2|max:100",
		"email": "required|email",
	})
	if v.Fails() {
		res.ValidationError(v.Errors())
		return body, false
	}
	return body, true
}

func userID(req *gohttp.Request, res *gohttp.Response) (int64, bool) {
	id, err := req.RouteParamInt("id")
	if err != nil {
		res.Error(http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

// handled answers err, if any, and reports whether it did.
func handled(res *gohttp.Response, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, repository.ErrUserNotFound):
		res.NotFound("User not found.")
	case errors.Is(err, services.ErrNameRequired):
		res.Error(http.StatusBadRequest, err.Error())
	default:
		res.ServerError()
	}
	return true
}
