package cmd

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bnema/yamcl/internal/adapters/curserinth"
	"github.com/bnema/yamcl/internal/adapters/mojang"
	"github.com/bnema/yamcl/internal/adapters/producer/local"
	instancesrender "github.com/bnema/yamcl/internal/adapters/render/instances"
	"github.com/bnema/yamcl/internal/adapters/render/notify"
	tomlrepo "github.com/bnema/yamcl/internal/adapters/repo/toml"
	"github.com/bnema/yamcl/internal/application"
	"github.com/bnema/yamcl/internal/domain"
	"github.com/bnema/yamcl/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	config        *viper.Viper
	settingsRepo  *tomlrepo.Repository
	settings      *application.SettingsService
	runtimes      *application.RuntimeService
	catalog       *application.VersionCatalog
	selector      *application.RuntimeSelector
	gather        *application.GatherEngine
	launcher      *application.LaunchOrchestrator
	notifications *application.NotificationRegistry

	instancesRenderer func([]domain.Instance, instancesrender.RenderOptions) string
	now               func() time.Time

	notifyMu sync.Mutex
	notifier *notify.Printer
	redirect func([]domain.Notification)
}

func wireApp(v *viper.Viper) (*app, error) {
	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	httpClient := &http.Client{}
	timeout := v.GetDuration(keyRequestTimeout)

	producer := local.New(local.Options{ScanConcurrency: v.GetInt(keyScanConcurrency)})
	releases := mojang.Source{
		URL:            v.GetString(keyManifestEndpoint),
		HTTPClient:     httpClient,
		RequestTimeout: timeout,
	}
	icons := curserinth.Lookup{
		BaseURL:        v.GetString(keyIconLookupEndpoint),
		HTTPClient:     httpClient,
		RequestTimeout: timeout,
	}

	a := &app{
		config:            v,
		settingsRepo:      repo,
		instancesRenderer: instancesrender.Render,
		now:               time.Now,
	}

	clock := ports.SystemClock{}
	a.notifications = application.NewNotificationRegistry(
		ports.NotificationPublisherFunc(a.publishNotifications),
		clock,
		application.NotificationRegistryOptions{
			SuccessTTL: v.GetDuration(keySuccessTTL),
			ErrorTTL:   v.GetDuration(keyErrorTTL),
		},
	)

	a.settings = application.NewSettingsService(repo)
	a.runtimes = application.NewRuntimeService(a.settings, producer)
	a.catalog = application.NewVersionCatalog(releases)
	a.selector = application.NewRuntimeSelector(repo, a.catalog)
	a.gather = application.NewGatherEngine(
		repo,
		producer,
		application.NewIconResolver(icons),
		a.notifications,
		clock,
		application.GatherOptions{
			RetryDelay: v.GetDuration(keyGatherRetryDelay),
			MaxRetries: v.GetInt(keyGatherMaxRetries),
		},
	)
	a.launcher = application.NewLaunchOrchestrator(a.selector, producer, a.notifications)

	return a, nil
}

// setNotificationOutput routes notification lines to out for the running command.
func (a *app) setNotificationOutput(out io.Writer) {
	a.notifyMu.Lock()
	defer a.notifyMu.Unlock()

	a.notifier = notify.NewPrinter(out)
}

func (a *app) publishNotifications(list []domain.Notification) {
	a.notifyMu.Lock()
	notifier, redirect := a.notifier, a.redirect
	a.notifyMu.Unlock()

	switch {
	case redirect != nil:
		redirect(list)
	case notifier != nil:
		notifier.Publish(list)
	}
}

// redirectNotifications sends snapshots to sink instead of the notification
// printer until the returned func is called.
func (a *app) redirectNotifications(sink func([]domain.Notification)) func() {
	a.notifyMu.Lock()
	a.redirect = sink
	a.notifyMu.Unlock()

	return func() {
		a.notifyMu.Lock()
		a.redirect = nil
		a.notifyMu.Unlock()
	}
}

func (a *app) close() {
	a.notifications.Close()
}
