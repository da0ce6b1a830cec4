// Package demo is a small user directory wired entirely through the
// container. The CLI serves it and the integration tests drive it.
package demo

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	gohttp "github.com/km-arc/autowire/framework/http"
)

// User is a directory entry.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ── Repository ───────────────────────────────────────────────────────────────

// UserRepository stores users.
type UserRepository interface {
	All() []User
	Find(id int) (User, bool)
	Save(u User) User
}

// MemoryUserRepository keeps users in memory. IDs are assigned on Save.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users []User
	next  int
}

// NewMemoryUserRepository seeds a repository. Seed IDs are reassigned.
func NewMemoryUserRepository(seed []User) *MemoryUserRepository {
	r := &MemoryUserRepository{}
	for _, u := range seed {
		r.Save(u)
	}
	return r
}

func (r *MemoryUserRepository) All() []User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(make([]User, 0, len(r.users)), r.users...)
}

func (r *MemoryUserRepository) Find(id int) (User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (r *MemoryUserRepository) Save(u User) User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	u.ID = r.next
	r.users = append(r.users, u)
	return u
}

// ── Mailer ───────────────────────────────────────────────────────────────────

// Mailer sends account notifications.
type Mailer interface {
	Welcome(u User) error
}

// LogMailer "sends" mail by logging it.
type LogMailer struct {
	log  *zap.Logger
	Sent int
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{log: logger.Named("mail")}
}

func (m *LogMailer) Welcome(u User) error {
	m.Sent++
	m.log.Info("welcome mail", zap.String("to", u.Email), zap.Int("user", u.ID))
	return nil
}

// ── Controller ───────────────────────────────────────────────────────────────

// UserController serves /api/users.
type UserController struct {
	repo   UserRepository
	mailer Mailer
}

func NewUserController(repo UserRepository, mailer Mailer) *UserController {
	return &UserController{repo: repo, mailer: mailer}
}

// Index lists every user.
func (c *UserController) Index() []User {
	return c.repo.All()
}

// Show returns one user, or writes 404.
func (c *UserController) Show(w http.ResponseWriter, id string) any {
	n, err := strconv.Atoi(id)
	if err != nil {
		gohttp.NewResponse(w).BadRequest("id must be numeric")
		return nil
	}
	u, ok := c.repo.Find(n)
	if !ok {
		gohttp.NewResponse(w).NotFound("user " + id + " not found")
		return nil
	}
	return u
}

// Store creates a user from a JSON or form body and sends the welcome mail.
func (c *UserController) Store(input *gohttp.Request, w http.ResponseWriter) error {
	var u User
	if err := input.Bind(&u); err != nil {
		gohttp.NewResponse(w).BadRequest(err.Error())
		return nil
	}
	if strings.TrimSpace(u.Name) == "" || !strings.Contains(u.Email, "@") {
		gohttp.NewResponse(w).Error(http.StatusUnprocessableEntity, "name and a valid email are required")
		return nil
	}

	u = c.repo.Save(u)
	if err := c.mailer.Welcome(u); err != nil {
		return err
	}
	gohttp.NewResponse(w).Created(u)
	return nil
}
