package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/society-portal/internal/client"
	"github.com/spec-kit/society-portal/internal/config"
	"github.com/spec-kit/society-portal/internal/session"
)

// App bundles the client-side surfaces behind the CLI commands.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *session.Store
	client  *client.Client
	gateway *client.Gateway
}

// NewApp wires the client stack from config.
func NewApp(cfg *config.Config, logger *zap.Logger) *App {
	store := session.NewStore(cfg.Client.SessionPath)
	apiClient := client.New(cfg.Client, store)
	return &App{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		client:  apiClient,
		gateway: client.NewGateway(apiClient),
	}
}

// NewRootCmd builds the portal command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "portal",
		Short:         "Residential-society maintenance-billing portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newSignupCmd(app),
		newOpenCmd(app),
		newAdminCmd(app),
		newBillsCmd(app),
		newPayCmd(app),
	)
	return root
}

// navigate runs the route guard for the given path and returns the principal
// when access is allowed. Denials print the redirect target, mirroring the
// portal's navigation behavior.
func (a *App) navigate(path string) (*session.Principal, error) {
	principal, _ := a.store.Get()
	decision := client.Navigate(principal, path)
	switch {
	case decision.NotFound:
		return nil, fmt.Errorf("no such page: %s", path)
	case decision.Redirect != "":
		return nil, fmt.Errorf("access to %s denied, redirected to %s", path, decision.Redirect)
	default:
		return principal, nil
	}
}
