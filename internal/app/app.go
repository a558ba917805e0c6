// Package app wires the seller center together: config, session, REST
// services and the notification channels the views run on.
package app

import (
	"context"
	"fmt"

	"negromart_seller/internal/api"
	"negromart_seller/internal/config"
	"negromart_seller/internal/logger"
	"negromart_seller/internal/notifications"
	"negromart_seller/internal/registration"
	"negromart_seller/internal/services"
	"negromart_seller/internal/session"
	"negromart_seller/internal/storage"
	"negromart_seller/internal/validator"
	"negromart_seller/ws"
)

type App struct {
	Config    *config.Config
	Storage   storage.Storage
	Session   *session.Session
	Client    *api.Client
	Validator *validator.Validator
	Services  *services.ServiceContainer

	toaster     notifications.Toaster
	channelOpts []ws.ChannelOption
}

type Option func(*App)

// WithToaster sets where bell and list toasts go.
func WithToaster(t notifications.Toaster) Option {
	return func(a *App) { a.toaster = t }
}

// WithChannelOptions is passed to every channel the app opens.
func WithChannelOptions(opts ...ws.ChannelOption) Option {
	return func(a *App) { a.channelOpts = append(a.channelOpts, opts...) }
}

// New restores the persisted session and builds the service container.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{Config: cfg}
	for _, opt := range opts {
		opt(a)
	}

	store, err := initializeStorage(cfg)
	if err != nil {
		return nil, err
	}
	a.Storage = store

	sess, err := session.Load(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	a.Session = sess

	a.Client = api.New(cfg.APIBaseURL(), sess, api.WithTimeout(cfg.RequestTimeout()))
	a.Validator = validator.New()
	a.Services = services.NewServiceContainer(a.Client, a.Validator)

	logger.CtxInfo(ctx, "seller center initialized",
		"api", cfg.APIBaseURL(),
		"ws", cfg.WS.URL,
		"storage", cfg.Storage.Type,
		"authenticated", sess.IsAuthenticated(),
	)
	return a, nil
}

func initializeStorage(cfg *config.Config) (storage.Storage, error) {
	store, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Debug("storage initialized", "type", cfg.Storage.Type, "path", cfg.Storage.BasePath)
	return store, nil
}

// Live is a running channel plus the view attached to it.
type Live struct {
	Channel *ws.Channel
	detach  func()
}

// Close detaches the view and stops the channel, cancelling any pending reconnect.
func (l *Live) Close() error {
	if l.detach != nil {
		l.detach()
	}
	return l.Channel.Close()
}

// NewChannel builds an unstarted channel with the configured delays and the
// notification service as ticket source.
func (a *App) NewChannel(cfg ws.ChannelConfig) *ws.Channel {
	if cfg.BaseURL == "" {
		cfg.BaseURL = a.Config.WS.URL
	}
	cfg.ReconnectDelay = a.Config.ReconnectDelay()
	cfg.TicketRetryDelay = a.Config.TicketRetryDelay()
	return ws.NewChannel(cfg, a.Services.NotificationService, a.channelOpts...)
}

// OpenBell starts the counter channel with the bell attached.
func (a *App) OpenBell(ctx context.Context) (*notifications.Counter, *Live, error) {
	ch := a.NewChannel(ws.ChannelConfig{Path: ws.PathCounter, Name: "bell"})
	counter := notifications.NewCounter(ch, a.toaster)
	if err := ch.Start(ctx); err != nil {
		counter.Detach()
		return nil, nil, err
	}
	return counter, &Live{Channel: ch, detach: counter.Detach}, nil
}

// OpenList starts the list channel with the list view attached.
func (a *App) OpenList(ctx context.Context) (*notifications.List, *Live, error) {
	ch := a.NewChannel(ws.ChannelConfig{Path: ws.PathNotifications, Name: "list"})
	list := notifications.NewList(ch, a.toaster)
	if err := ch.Start(ctx); err != nil {
		list.Detach()
		return nil, nil, err
	}
	return list, &Live{Channel: ch, detach: list.Detach}, nil
}

// OpenDetail fetches one notification and starts its detail channel, which
// marks it viewed on every connect.
func (a *App) OpenDetail(ctx context.Context, id int64) (*notifications.Detail, *Live, error) {
	ch := a.NewChannel(notifications.DetailChannelConfig(a.Config.WS.URL, id))
	if err := ch.Start(ctx); err != nil {
		return nil, nil, err
	}

	detail := notifications.NewDetail(id, a.Services.NotificationService)
	detail.Load(logger.WithView(ctx, "detail"))
	return detail, &Live{Channel: ch}, nil
}

// Wizard returns a registration wizard backed by the persisted draft.
func (a *App) Wizard() *registration.Wizard {
	return registration.NewWizard(
		registration.NewDraftStore(a.Storage),
		a.Validator,
		a.Services.RegistrationService,
		registration.WithUploadPolicy(a.Config.UploadPolicy()),
	)
}
