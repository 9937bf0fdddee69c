// Command scribe is a terminal client for the blog backend. It keeps a
// persisted session on disk, so a single login carries across invocations;
// expired access tokens are refreshed transparently on the next command.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/scribeworks/goscribe"
	"github.com/scribeworks/goscribe/session"
)

type appConfig struct {
	BaseURL     string
	SessionFile string
	Timeout     time.Duration
	Verbose     bool
}

func loadConfig(flags *pflag.FlagSet) (appConfig, error) {
	v := viper.New()
	v.SetConfigName("scribe")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "scribe"))
	}

	v.SetEnvPrefix("SCRIBE")
	v.AutomaticEnv()

	v.SetDefault("base_url", "http://localhost:3000")
	v.SetDefault("timeout", "30s")
	if home, err := os.UserHomeDir(); err == nil {
		v.SetDefault("session_file", filepath.Join(home, ".config", "scribe", "session.json"))
	} else {
		v.SetDefault("session_file", "scribe-session.json")
	}

	if err := v.BindPFlag("base_url", flags.Lookup("base-url")); err != nil {
		return appConfig{}, err
	}
	if err := v.BindPFlag("session_file", flags.Lookup("session-file")); err != nil {
		return appConfig{}, err
	}
	if err := v.BindPFlag("timeout", flags.Lookup("timeout")); err != nil {
		return appConfig{}, err
	}
	if err := v.BindPFlag("verbose", flags.Lookup("verbose")); err != nil {
		return appConfig{}, err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return appConfig{}, fmt.Errorf("load config file: %w", err)
		}
	}

	return appConfig{
		BaseURL:     v.GetString("base_url"),
		SessionFile: v.GetString("session_file"),
		Timeout:     v.GetDuration("timeout"),
		Verbose:     v.GetBool("verbose"),
	}, nil
}

func newLogger(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func newClient(cfg appConfig, logger zerolog.Logger) (*goscribe.Client, error) {
	full := goscribe.Config{
		API: goscribe.APIConfig{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		},
		Session: goscribe.SessionConfig{
			FilePath:       cfg.SessionFile,
			RefreshTimeout: 10 * time.Second,
		},
		Routes: goscribe.RouteConfig{
			LoginPath:   "/login",
			PublicPaths: []string{"/login", "/signup", "/refresh-token"},
		},
	}

	// A recovery in a terminal context means the stored session is dead;
	// log where a browser would redirect.
	nav := session.NavigatorFunc(func(path string) {
		logger.Warn().Str("path", path).Msg("session expired, please log in again")
	})

	return goscribe.New().
		WithConfig(full).
		WithNavigator(nav).
		Build(context.Background())
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: scribe <command> [flags]

commands:
  login <email>                      log in and persist the session
  logout                             clear the persisted session
  whoami                             show the logged-in user
  register                           create an account interactively
  posts list                         list your posts
  posts recent [n]                   list the newest posts across all authors
  posts show <id>                    show one of your posts
  posts create <title>               create a post (content from stdin)
  posts edit <id> <title>            retitle a post (content from stdin)
  posts delete <id>                  delete a post

flags:
  --base-url URL      backend base URL (SCRIBE_BASE_URL)
  --session-file PATH persisted session location (SCRIBE_SESSION_FILE)
  --verbose           debug logging`)
	os.Exit(2)
}

func main() {
	flags := pflag.NewFlagSet("scribe", pflag.ExitOnError)
	flags.String("base-url", "", "backend base URL")
	flags.String("session-file", "", "persisted session location")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.Bool("verbose", false, "debug logging")
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) == 0 {
		usage()
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scribe: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Verbose)

	client, err := newClient(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("client init failed")
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+15*time.Second)
	defer cancel()

	if err := run(ctx, client, logger, args); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, client *goscribe.Client, logger zerolog.Logger, args []string) error {
	switch args[0] {
	case "login":
		return cmdLogin(ctx, client, args[1:])
	case "logout":
		return client.Logout(ctx)
	case "whoami":
		return cmdWhoami(ctx, client)
	case "register":
		return cmdRegister(ctx, client)
	case "posts":
		if len(args) < 2 {
			usage()
		}
		return cmdPosts(ctx, client, logger, args[1:])
	default:
		usage()
		return nil
	}
}

func cmdLogin(ctx context.Context, client *goscribe.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: scribe login <email>")
	}

	password, err := promptPassword("password: ")
	if err != nil {
		return err
	}

	user, err := client.Login(ctx, goscribe.Credentials{Email: args[0], Password: password})
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s (%s)\n", user.Username, user.Email)
	return nil
}

func cmdWhoami(ctx context.Context, client *goscribe.Client) error {
	ok, err := client.Revalidate(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("not logged in")
	}

	user := client.CurrentUser()
	if user == nil {
		return errors.New("session has tokens but no profile; log in again")
	}

	fmt.Printf("%s  %s  %s\n", user.ID, user.Username, user.Email)
	return nil
}

func cmdRegister(ctx context.Context, client *goscribe.Client) error {
	read := func(label string) (string, error) {
		fmt.Fprintf(os.Stderr, "%s: ", label)
		var value string
		if _, err := fmt.Scanln(&value); err != nil {
			return "", fmt.Errorf("read %s: %w", label, err)
		}
		return value, nil
	}

	name, err := read("name")
	if err != nil {
		return err
	}
	username, err := read("username")
	if err != nil {
		return err
	}
	phone, err := read("phone")
	if err != nil {
		return err
	}
	email, err := read("email")
	if err != nil {
		return err
	}
	password, err := promptPassword("password: ")
	if err != nil {
		return err
	}

	if err := client.Register(ctx, goscribe.Registration{
		Name:     name,
		Username: username,
		Phone:    phone,
		Email:    email,
		Password: password,
	}); err != nil {
		return err
	}

	fmt.Println("account created; run `scribe login` to sign in")
	return nil
}

func cmdPosts(ctx context.Context, client *goscribe.Client, logger zerolog.Logger, args []string) error {
	switch args[0] {
	case "list":
		posts, err := client.MyPosts(ctx)
		if err != nil {
			return err
		}
		for _, p := range posts {
			fmt.Printf("%s  %s  %s\n", p.ID, p.CreatedAt.Format("2006-01-02"), p.Title)
		}
		return nil

	case "recent":
		n := 10
		if len(args) > 1 {
			if _, err := fmt.Sscanf(args[1], "%d", &n); err != nil {
				return fmt.Errorf("bad count %q", args[1])
			}
		}
		posts, err := client.RecentPosts(ctx, n)
		if err != nil {
			return err
		}
		for _, p := range posts {
			fmt.Printf("%s  %s  %s\n", p.ID, p.CreatedAt.Format("2006-01-02"), p.Title)
		}
		return nil

	case "show":
		if len(args) != 2 {
			return errors.New("usage: scribe posts show <id>")
		}
		post, err := client.Post(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n\n%s\n", post.Title, post.Content)
		for _, s := range post.Sections {
			fmt.Printf("\n## %s\n\n%s\n", s.Title, s.Body)
		}
		return nil

	case "create":
		if len(args) != 2 {
			return errors.New("usage: scribe posts create <title> (content on stdin)")
		}
		content, err := readStdin()
		if err != nil {
			return err
		}
		post, err := client.CreatePost(ctx, goscribe.PostInput{
			Title:    args[1],
			Content:  content,
			Sections: []goscribe.Section{{Title: args[1], Body: content}},
		})
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", post.ID)
		return nil

	case "edit":
		if len(args) != 3 {
			return errors.New("usage: scribe posts edit <id> <title> (content on stdin)")
		}
		content, err := readStdin()
		if err != nil {
			return err
		}
		post, err := client.UpdatePost(ctx, args[1], goscribe.PostInput{
			Title:    args[2],
			Content:  content,
			Sections: []goscribe.Section{{Title: args[2], Body: content}},
		})
		if err != nil {
			return err
		}
		logger.Debug().Int("sections", len(post.Sections)).Msg("sections carried from the pre-edit post")
		fmt.Printf("updated %s\n", post.ID)
		return nil

	case "delete":
		if len(args) != 2 {
			return errors.New("usage: scribe posts delete <id>")
		}
		if err := client.DeletePost(ctx, args[1]); err != nil {
			if errors.Is(err, goscribe.ErrDeleteRetriesExhausted) {
				return fmt.Errorf("delete failed after retry: %w", err)
			}
			return err
		}
		fmt.Println("deleted")
		return nil

	default:
		usage()
		return nil
	}
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read content from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
