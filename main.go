package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/km-arc/go-ioc/app/routes"
	"github.com/km-arc/go-ioc/app/services"
	"github.com/km-arc/go-ioc/framework/app"
	"github.com/km-arc/go-ioc/framework/ioc"

	// Component registrations.
	_ "github.com/km-arc/go-ioc/app/http/controllers"
	_ "github.com/km-arc/go-ioc/app/repository"
)

// Usage:
//
//	go-ioc          resolve userService and run the demo
//	go-ioc serve    start the HTTP server
func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := application.Register(&routes.RouteServiceProvider{}); err != nil {
		fail(application, err)
	}

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		if err := application.Run(); err != nil {
			fail(application, err)
		}
		return
	}

	if err := demo(application); err != nil {
		fail(application, err)
	}
}

func demo(application *app.Application) error {
	if err := application.Boot(); err != nil {
		return err
	}
	logger := application.Logger()
	defer func() { _ = logger.Sync() }()

	svc, err := ioc.Resolve[*services.UserService](application.Container, "userService")
	if err != nil {
		return err
	}

	alice, err := svc.CreateUser("Alice", "alice@example.com")
	if err != nil {
		return err
	}
	found, err := svc.GetUserByID(alice.ID)
	if err != nil {
		return err
	}
	logger.Info("user round trip", zap.Stringer("user", found))

	for _, bean := range application.Beans() {
		fmt.Printf("%-16s %-40s resolved=%t\n", bean.Name, bean.Type, bean.Resolved)
	}
	return nil
}

func fail(application *app.Application, err error) {
	application.Logger().Error("go-ioc failed", zap.Error(err))
	_ = application.Logger().Sync()
	os.Exit(1)
}
