package directory

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/Iron-Ham/ghlookup/internal/config"
	"github.com/Iron-Ham/ghlookup/internal/errors"
	"github.com/Iron-Ham/ghlookup/internal/logging"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root. Empty means the public GitHub API.
	BaseURL string
	// Token authenticates requests when set.
	Token string
	// UserAgent overrides go-github's default user agent.
	UserAgent string
	// Timeout bounds each request. Zero disables the bound.
	Timeout time.Duration
	// HTTPClient is the transport to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// OptionsFromConfig builds Options from the directory section of the config.
func OptionsFromConfig(cfg config.DirectoryConfig, logger *logging.Logger) Options {
	return Options{
		BaseURL:   cfg.BaseURL,
		Token:     cfg.Token,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout(),
		Logger:    logger,
	}
}

// Client is a Directory backed by the GitHub REST API.
type Client struct {
	gh      *github.Client
	timeout time.Duration
	logger  *logging.Logger
}

var _ Directory = (*Client)(nil)

// NewClient creates a Client. It returns a ValidationError if BaseURL cannot
// be parsed.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if opts.Token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	gh := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil || u.Host == "" {
			return nil, errors.NewValidationError("invalid directory base URL").
				WithField("directory.base_url").
				WithValue(opts.BaseURL).
				WithCause(err)
		}
		gh.BaseURL = u
	}
	if opts.UserAgent != "" {
		gh.UserAgent = opts.UserAgent
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	return &Client{
		gh:      gh,
		timeout: opts.Timeout,
		logger:  logger.WithComponent("directory"),
	}, nil
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.gh.BaseURL.String()
}

// SearchUsers implements Directory. The term is passed to the search API
// verbatim, so GitHub qualifiers such as "type:org" work.
func (c *Client) SearchUsers(ctx context.Context, term string) ([]SearchUser, error) {
	if strings.TrimSpace(term) == "" {
		return nil, errors.NewValidationError("search term is empty").WithField("term")
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	result, _, err := c.gh.Search.Users(ctx, term, nil)
	if err != nil {
		mapped := mapError(errors.OpSearchUsers, err, "", term, c.timeout)
		c.logger.Log(errors.GetSeverity(mapped).LogLevel(), "search failed", "term", term, "error", mapped.Error())
		return nil, mapped
	}

	users := make([]SearchUser, 0, len(result.Users))
	for _, u := range result.Users {
		if u == nil {
			continue
		}
		users = append(users, SearchUser{Login: u.GetLogin(), ID: u.GetID()})
	}

	c.logger.Debug("search complete",
		"term", term,
		"count", len(users),
		"total", result.GetTotal(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}

// GetUser implements Directory.
func (c *Client) GetUser(ctx context.Context, login string) (UserProfile, error) {
	if strings.TrimSpace(login) == "" {
		return UserProfile{}, errors.NewValidationError("login is empty").WithField("login")
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		mapped := mapError(errors.OpGetUser, err, login, "", c.timeout)
		c.logger.Log(errors.GetSeverity(mapped).LogLevel(), "profile fetch failed", "login", login, "error", mapped.Error())
		return UserProfile{}, mapped
	}

	profile := UserProfile{
		Login:         user.GetLogin(),
		ID:            user.GetID(),
		AvatarURL:     user.GetAvatarURL(),
		FollowerCount: user.GetFollowers(),
	}

	c.logger.Debug("profile fetched",
		"login", profile.Login,
		"id", profile.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return profile, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
