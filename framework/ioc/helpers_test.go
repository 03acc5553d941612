package ioc_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/km-arc/go-ioc/framework/ioc"
)

const (
	shopPkg       = "example.com/shop"
	repositoryPkg = "example.com/shop/repository"
	servicePkg    = "example.com/shop/service"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type UserRepository struct {
	saved []string
}

func (r *UserRepository) Save(name string) { r.saved = append(r.saved, name) }

type UserService struct {
	userRepository *UserRepository `inject:""`
}

func (s *UserService) Repository() *UserRepository { return s.userRepository }

func (s *UserService) CreateUser(name string) { s.userRepository.Save(name) }

// Greeter is registered under an explicit name.
type Greeter struct{}

// A and B depend on each other.
type A struct {
	b *B `inject:""`
}

type B struct {
	a *A `inject:""`
}

// Loop depends on itself.
type Loop struct {
	loop *Loop `inject:""`
}

// Orphan depends on a bean nobody registers.
type Orphan struct {
	missing *UserRepository `inject:""`
}

// Mismatch names an existing bean with an incompatible field type.
type Mismatch struct {
	userRepository *UserService `inject:""`
}

type Transport interface {
	Send(msg string) error
}

type memoryTransport struct {
	sent []string
}

func (t *memoryTransport) Send(msg string) error {
	t.sent = append(t.sent, msg)
	return nil
}

// Mailer receives its transport through a setter.
type Mailer struct {
	transport Transport
}

func (m *Mailer) SetTransport(t Transport) { m.transport = t }

func (m *Mailer) Transport() Transport { return m.transport }

// Notifier receives its transport through an interface-typed field.
type Notifier struct {
	Transport Transport `inject:""`
}

// Clock has no zero-argument initializer.
type Clock func() int64

// Counted counts its constructions.
type Counted struct{}

// Checked fails its post-injection hook when broken is set.
type Checked struct {
	broken bool
	ready  bool
}

func (c *Checked) Initialize() error {
	if c.broken {
		return errors.New("not ready")
	}
	c.ready = true
	return nil
}

// Warmed looks up another bean from its post-injection hook.
type Warmed struct {
	container *ioc.Container
	repo      *UserRepository
}

func (w *Warmed) Initialize() error {
	bean, err := w.container.GetBean("userRepository")
	if err != nil {
		return err
	}
	w.repo = bean.(*UserRepository)
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// userCatalog registers the repository and service under two nested packages.
func userCatalog() *ioc.Catalog {
	cat := ioc.NewCatalog()
	ioc.Register[UserRepository](cat, ioc.InPackage(repositoryPkg))
	ioc.Register[UserService](cat, ioc.InPackage(servicePkg))
	return cat
}

func countingFactory(calls *atomic.Int32, ready <-chan struct{}) func() (*Counted, error) {
	return func() (*Counted, error) {
		calls.Add(1)
		if ready != nil {
			<-ready
		}
		return &Counted{}, nil
	}
}

type lookup struct {
	bean any
	err  error
}

// lookupAsync runs GetBean on its own goroutine.
func lookupAsync(c *ioc.Container, name string) <-chan lookup {
	ch := make(chan lookup, 1)
	go func() {
		bean, err := c.GetBean(name)
		ch <- lookup{bean: bean, err: err}
	}()
	return ch
}

// await fails the test when a lookup does not return in time.
func await(t *testing.T, ch <-chan lookup, name string) lookup {
	t.Helper()
	select {
	case l := <-ch:
		return l
	case <-time.After(2 * time.Second):
		t.Fatalf("GetBean(%q) did not return", name)
		return lookup{}
	}
}
