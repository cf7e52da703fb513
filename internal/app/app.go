// Package app wires one deployment's client stack together. There is no global
// instance: callers build a Context and pass it where it is needed.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/internal/api/market"
	"github.com/shiptrain/portal/internal/api/training"
	"github.com/shiptrain/portal/internal/apiclient"
	"github.com/shiptrain/portal/internal/events"
	"github.com/shiptrain/portal/internal/router"
	"github.com/shiptrain/portal/internal/session"
	"github.com/shiptrain/portal/internal/storage"
	"github.com/shiptrain/portal/pkg/httpclient"
	"github.com/shiptrain/portal/pkg/logger"
)

// Option customizes the wiring
type Option func(*options)

type options struct {
	kv           storage.Storage
	httpClient   httpclient.Client
	guardOptions []router.GuardOption
}

// WithStorage uses kv instead of opening the configured driver
func WithStorage(kv storage.Storage) Option {
	return func(o *options) {
		o.kv = kv
	}
}

// WithHTTPClient replaces the API client's transport
func WithHTTPClient(hc httpclient.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithGuardOptions passes options to the navigation guard
func WithGuardOptions(opts ...router.GuardOption) Option {
	return func(o *options) {
		o.guardOptions = append(o.guardOptions, opts...)
	}
}

// Context is the application context of one deployment
type Context struct {
	Deployment config.DeploymentConfig
	Storage    storage.Storage
	Session    *session.Store
	Bus        *events.Bus
	Client     *apiclient.Client
	Routes     *router.Table
	Guard      *router.Guard
	Navigator  *router.Navigator

	// Exactly one of these is set, matching the deployment
	Training *training.API
	Market   *market.API

	unsubscribe func()
}

// New builds the context for the named deployment
func New(cfg *config.Config, deployment string, opts ...Option) (*Context, error) {
	d, err := cfg.Deployment(deployment)
	if err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	kv := o.kv
	if kv == nil {
		kv, err = storage.Open(cfg.Storage, d.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
	}

	routes, err := router.LoadTable(d.Name)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	a := &Context{
		Deployment: d,
		Storage:    kv,
		Session:    session.NewStore(kv, session.KeysFor(d)),
		Bus:        events.NewBus(),
		Routes:     routes,
	}

	var clientOpts []apiclient.Option
	if o.httpClient != nil {
		clientOpts = append(clientOpts, apiclient.WithHTTPClient(o.httpClient))
	}
	a.Client = apiclient.New(d, a.Session, a.Bus, clientOpts...)
	a.Guard = router.NewGuard(routes, a.Session, d, o.guardOptions...)
	a.Navigator = router.NewNavigator(a.Guard, d.HomeRoute)

	a.unsubscribe = a.Bus.Subscribe(a.onAuthExpired)

	switch d.Name {
	case config.DeploymentTraining:
		a.Training = training.New(a.Client)
	case config.DeploymentMarket:
		a.Market = market.New(a.Client)
	}

	logger.Debug("Application context ready",
		zap.String("deployment", d.Name),
		zap.String("base_url", d.BaseURL),
		zap.Bool("logged_in", a.Session.IsLoggedIn()))

	return a, nil
}

// onAuthExpired is the single navigation observer for expired sessions
func (a *Context) onAuthExpired(ev events.AuthExpired) {
	a.Navigator.Replace(a.Guard.LoginRoute())
	logger.Info("Session expired, redirected to login",
		zap.String("deployment", ev.Deployment),
		zap.String("path", ev.Path),
		zap.String("source", ev.Source))
}

// Login authenticates against the deployment and records the session
func (a *Context) Login(ctx context.Context, username, password string) (session.Profile, error) {
	var (
		env *apiclient.Envelope
		err error
	)
	switch {
	case a.Training != nil:
		env, err = a.Training.Auth.Login(ctx, training.Credentials{Username: username, Password: password})
	case a.Market != nil:
		env, err = a.Market.Auth.Login(ctx, market.Credentials{Username: username, Password: password})
	default:
		return session.Profile{}, fmt.Errorf("deployment %s has no auth module", a.Deployment.Name)
	}
	if err != nil {
		return session.Profile{}, err
	}

	// both deployments answer {token, user}
	res, err := apiclient.Decode[training.LoginResult](env)
	if err != nil {
		return session.Profile{}, err
	}
	if res.Token == "" {
		return session.Profile{}, errors.New("login response carried no credential")
	}
	if err := a.Session.Login(res.Token, res.User); err != nil {
		return session.Profile{}, fmt.Errorf("failed to store session: %w", err)
	}
	return res.User, nil
}

// Logout tells the server and forgets the local session even if the server call fails
func (a *Context) Logout(ctx context.Context) error {
	var remoteErr error
	if a.Session.IsLoggedIn() {
		switch {
		case a.Training != nil:
			_, remoteErr = a.Training.Auth.Logout(ctx)
		case a.Market != nil:
			_, remoteErr = a.Market.Auth.Logout(ctx)
		}
	}
	if remoteErr != nil {
		logger.Warn("Remote logout failed", zap.String("error", apiclient.Message(remoteErr)))
	}
	return a.Session.Logout()
}

// Close unsubscribes the observer and releases storage
func (a *Context) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	return a.Storage.Close()
}
