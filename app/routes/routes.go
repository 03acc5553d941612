package routes

import (
	"github.com/km-arc/go-ioc/app/http/controllers"
	"github.com/km-arc/go-ioc/framework/ioc"
	"github.com/km-arc/go-ioc/framework/routing"
)

// RouteServiceProvider mounts the application routes once the component
// scan has run.
type RouteServiceProvider struct{}

func (p *RouteServiceProvider) Register(_ *ioc.Container) error { return nil }

func (p *RouteServiceProvider) Boot(app *ioc.Container) error {
	router, err := ioc.Resolve[*routing.Router](app, "router")
	if err != nil {
		return err
	}
	users, err := ioc.Resolve[*controllers.UserController](app, "userHandler")
	if err != nil {
		return err
	}

	router.Prefix("/api", func(api *routing.Router) {
		api.Get("/users", users.Index)
		api.Post("/users", users.Store)
		api.Get("/users/{id}", users.Show)
		api.Put("/users/{id}", users.Update)
		api.Delete("/users/{id}", users.Destroy)
	})
	return nil
}
