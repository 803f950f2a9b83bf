package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"tudo/internal/config"
)

const (
	// CallbackTimeout bounds how long Authorize waits for the browser.
	CallbackTimeout = 5 * time.Minute

	// tokenExchangeTimeout bounds the code-for-token exchange.
	tokenExchangeTimeout = 30 * time.Second

	// callbackMaxPortAttempts is how many ports after callbackStartPort are tried.
	callbackMaxPortAttempts = 5
)

// callbackStartPort is the first loopback port tried for the OAuth callback.
// Zero lets the kernel pick one.
var callbackStartPort = 8085

// ErrNoCallbackPort is returned when no loopback port could be bound.
var ErrNoCallbackPort = errors.New("could not bind to local port for OAuth callback")

// OAuthConfig reads the OAuth client file named by cfg and returns a config
// scoped to Google Tasks.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth client file: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, TasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth client file: %w", err)
	}
	return oauthConfig, nil
}

// LoadToken reads token.json.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken writes token.json with mode 0600, creating the config directory.
func SaveToken(cfg *config.Config, token *oauth2.Token) error {
	if err := cfg.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.TokenPath(), data, 0600)
}

// TokenValid reports whether token.json holds a refresh token that the
// OAuth endpoint still accepts.
func TokenValid(ctx context.Context, cfg *config.Config) bool {
	token, err := LoadToken(cfg)
	if err != nil || token.RefreshToken == "" {
		return false
	}
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return false
	}

	timeout := cfg.Settings.APITimeout
	if timeout <= 0 {
		timeout = APITimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Refreshes if the access token has expired.
	_, err = oauthConfig.TokenSource(ctx, token).Token()
	return err == nil
}

// Authorize runs the installed-app flow: it serves a loopback callback,
// hands the consent URL to showURL, and exchanges the returned code for a
// token using PKCE.
func Authorize(ctx context.Context, oauthConfig *oauth2.Config, showURL func(url string)) (*oauth2.Token, error) {
	// Bind the callback before the URL is shown; the redirect names the port.
	listener, err := listenLoopback()
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	conf := *oauthConfig
	conf.RedirectURL = fmt.Sprintf("http://%s/callback", listener.Addr())

	verifier := oauth2.GenerateVerifier()
	state := oauth2.GenerateVerifier()
	showURL(conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	))

	// Wait for the browser to come back with a code.
	code, err := waitForCode(ctx, listener, state)
	if err != nil {
		return nil, err
	}

	// Exchange the code, proving possession of the verifier.
	exchangeCtx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()
	token, err := conf.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// listenLoopback binds the first free port from callbackStartPort on.
func listenLoopback() (net.Listener, error) {
	for i := 0; i < callbackMaxPortAttempts; i++ {
		port := callbackStartPort
		if port != 0 {
			port += i
		}
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return listener, nil
		}
	}
	return nil, ErrNoCallbackPort
}

// waitForCode serves /callback on listener until a code with the expected
// state arrives, the context ends, or CallbackTimeout passes.
func waitForCode(ctx context.Context, listener net.Listener, state string) (string, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "State mismatch", http.StatusBadRequest)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			select {
			case errCh <- errors.New("no code in callback"):
			default:
			}
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>tudo is authorized</h1><p>You may close this window.</p></body></html>")
		select {
		case codeCh <- code:
		default:
		}
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errCh <- err:
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	timer := time.NewTimer(CallbackTimeout)
	defer timer.Stop()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-timer.C:
		return "", errors.New("oauth callback timed out")
	case <-ctx.Done():
		return "", fmt.Errorf("cancelled: %w", ctx.Err())
	}
}
