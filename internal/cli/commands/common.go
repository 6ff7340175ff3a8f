package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/microshop-platform/shopctl/internal/cli/auth"
	"github.com/microshop-platform/shopctl/internal/cli/client"
	"github.com/microshop-platform/shopctl/internal/cli/config"
	"github.com/microshop-platform/shopctl/internal/cli/guard"
	"github.com/microshop-platform/shopctl/internal/cli/session"
	"github.com/microshop-platform/shopctl/internal/cli/storeselect"
	"github.com/microshop-platform/shopctl/internal/models"
)

// apiClient is the surface of client.Client the commands use. Tests substitute
// a fake without network access.
type apiClient interface {
	Login(ctx context.Context, email, password string) (*client.LoginResponse, error)
	ValidateToken(ctx context.Context, token string) bool
	Register(ctx context.Context, req client.RegisterRequest) (*models.User, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SearchProducts(ctx context.Context, category string) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, input client.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, input client.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, token string, id int64) error
	ListUsers(ctx context.Context, token string) ([]models.User, error)
}

// runtime bundles the dependencies a command needs once a store is resolved.
type runtime struct {
	store        *config.Store
	api          apiClient
	sessions     auth.SessionStore
	out          io.Writer
	readPassword func() (string, error)
}

// Option overrides a runtime dependency. Production commands use the real
// keyring, HTTP client and resolved store; tests inject doubles.
type Option func(*runtime)

// WithStore skips store resolution and uses the given storefront.
func WithStore(store *config.Store) Option {
	return func(r *runtime) { r.store = store }
}

// WithAPIClient substitutes the API client.
func WithAPIClient(api apiClient) Option {
	return func(r *runtime) { r.api = api }
}

// WithSessionStore substitutes the durable session record store.
func WithSessionStore(store auth.SessionStore) Option {
	return func(r *runtime) { r.sessions = store }
}

// WithOutput redirects command output.
func WithOutput(out io.Writer) Option {
	return func(r *runtime) { r.out = out }
}

// WithPasswordReader substitutes the interactive password prompt.
func WithPasswordReader(read func() (string, error)) Option {
	return func(r *runtime) { r.readPassword = read }
}

// newRuntime resolves the storefront and fills in production defaults for
// anything the options didn't override.
func newRuntime(storeAlias string, opts ...Option) (*runtime, error) {
	r := &runtime{}
	for _, opt := range opts {
		opt(r)
	}

	if r.store == nil {
		cfg, err := config.LoadFromCurrentDir()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w\nRun 'shopctl init' to create a configuration file", err)
		}

		store, err := storeselect.ResolveStore(cfg, storeAlias)
		if err != nil {
			return nil, err
		}
		r.store = store
	}

	if err := r.store.Validate(); err != nil {
		return nil, err
	}

	if r.api == nil {
		r.api = client.New(r.store.URL)
	}
	if r.sessions == nil {
		r.sessions = auth.Default
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.readPassword == nil {
		r.readPassword = promptPassword
	}

	return r, nil
}

// sessionManager creates the session manager for the resolved storefront.
func (r *runtime) sessionManager() *session.Manager {
	return session.NewManager(r.store.URL, r.sessions, r.api)
}

// requireAccess restores the session and enforces the route guard for the
// given route, translating redirect decisions into actionable errors.
func (r *runtime) requireAccess(ctx context.Context, route string) (*session.Manager, error) {
	mgr := r.sessionManager()
	mgr.Initialize(ctx)

	g := guard.New()
	switch g.Check(mgr.Snapshot(), route) {
	case guard.RedirectLogin:
		return nil, fmt.Errorf("not signed in. Run 'shopctl login' first")
	case guard.RedirectHome:
		return nil, fmt.Errorf("this command needs administrator access")
	}

	return mgr, nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password flag or SHOPCTL_PASSWORD env var)")
	}

	fmt.Print("Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println() // New line after password input

	return string(bytePassword), nil
}
