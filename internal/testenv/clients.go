package testenv

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"golang.org/x/net/publicsuffix"
)

// RunContext is handed to the test body. URL is never empty.
type RunContext struct {
	// URL is the base URL of the running server, e.g. http://localhost:54321
	URL string

	// DatabaseURL is the connection string of the run's database
	DatabaseURL string

	// HTTP is nil when the run was started without an HTTP client
	HTTP *http.Client

	// Browser is nil unless a browser was requested
	Browser selenium.WebDriver

	// RunID identifies the run in logs
	RunID string
}

// Features selects the clients built for a run.
type Features struct {
	HTTPClient bool
	Browser    bool
}

// WebDriverDialer opens a remote browser session.
type WebDriverDialer func(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error)

// headlessChromeArgs are added when HEADLESS is set
var headlessChromeArgs = []string{"--headless", "--disable-gpu", "--disable-dev-shm-usage"}

// ClientFactory builds the clients of a run.
type ClientFactory struct {
	webDriverURL string
	headless     bool
	httpTimeout  time.Duration
	probeTimeout time.Duration
	dial         WebDriverDialer
	logger       *slog.Logger
}

// NewClientFactory reads HEADLESS from the environment; any value (even empty) enables headless mode.
func NewClientFactory(webDriverURL string, httpTimeout time.Duration, logger *slog.Logger) *ClientFactory {
	_, headless := os.LookupEnv("HEADLESS")
	return &ClientFactory{
		webDriverURL: webDriverURL,
		headless:     headless,
		httpTimeout:  httpTimeout,
		probeTimeout: 2 * time.Second,
		dial:         selenium.NewRemote,
		logger:       logger,
	}
}

// Build returns a RunContext for baseURL with the requested clients.
func (f *ClientFactory) Build(ctx context.Context, baseURL string, features Features) (*RunContext, error) {
	rc := &RunContext{URL: baseURL}

	if features.HTTPClient {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		rc.HTTP = &http.Client{Jar: jar, Timeout: f.httpTimeout}
	}

	if features.Browser {
		wd, err := f.browser(ctx)
		if err != nil {
			return nil, err
		}
		rc.Browser = wd
	}

	return rc, nil
}

func (f *ClientFactory) browser(ctx context.Context) (selenium.WebDriver, error) {
	if err := f.probe(ctx); err != nil {
		return nil, err
	}

	caps := f.Capabilities()
	wd, err := f.dial(caps, f.webDriverURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open webdriver session at %s: %w", f.webDriverURL, err)
	}

	f.logger.Debug("webdriver session opened",
		slog.String("webdriver_url", f.webDriverURL),
		slog.Bool("headless", f.headless),
	)
	return wd, nil
}

// Capabilities returns the chrome capabilities requested from the webdriver.
func (f *ClientFactory) Capabilities() selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": "chrome"}

	chromeCaps := chrome.Capabilities{}
	if f.headless {
		chromeCaps.Args = append(chromeCaps.Args, headlessChromeArgs...)
	}
	caps.AddChrome(chromeCaps)
	return caps
}

// probe returns ErrWebDriverUnavailable when nothing accepts connections at the webdriver address.
func (f *ClientFactory) probe(ctx context.Context) error {
	u, err := url.Parse(f.webDriverURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: invalid WEBDRIVER_URL %q", ErrWebDriverUnavailable, f.webDriverURL)
	}

	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), "80")
		if u.Scheme == "https" {
			addr = net.JoinHostPort(u.Hostname(), "443")
		}
	}

	dialer := net.Dialer{Timeout: f.probeTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w at %s: %w", ErrWebDriverUnavailable, addr, err)
	}
	_ = conn.Close()
	return nil
}
