package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/pressroom"
)

// cli carries the state shared by every subcommand once the persistent
// pre-run has loaded configuration.
type cli struct {
	cfgFile string
	v       *viper.Viper
	cfg     pressroom.SiteConfig
	logger  *log.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "pressroom",
		Short: "Serve and maintain a markdown publishing site",
		Long: `pressroom reads articles, AMAs and press releases from markdown files
with a YAML header and serves them as a website with search, topic filters,
RSS and a sitemap.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initializeConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./pressroom.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("posts-dir", "", "primary content directory")
	root.PersistentFlags().String("content-dir", "", "secondary content directory")
	_ = c.v.BindPFlag("logLevel", root.PersistentFlags().Lookup("log-level"))
	_ = c.v.BindPFlag("postsDir", root.PersistentFlags().Lookup("posts-dir"))
	_ = c.v.BindPFlag("contentDir", root.PersistentFlags().Lookup("content-dir"))

	root.AddCommand(
		newServeCmd(c),
		newListCmd(c),
		newShowCmd(c),
		newNormalizeCmd(c),
		newNewCmd(),
		newVersionCmd(),
	)
	return root
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("name", "CryptoBitMag")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("defaultImage", "/assets/blog/default/cover.jpg")
	v.SetDefault("addr", ":3000")
	v.SetDefault("postsDir", "_posts")
	v.SetDefault("contentDir", "content")
	v.SetDefault("staticDir", "public")
	v.SetDefault("pageSize", 12)
	v.SetDefault("latestCount", 4)
	v.SetDefault("homeTopics", []string{"bitcoin", "ethereum", "solana", "news"})
	v.SetDefault("feedSize", 20)
	v.SetDefault("cacheTTL", time.Duration(0))
	v.SetDefault("watch", false)
	v.SetDefault("searchRateLimit", 60)
	v.SetDefault("sessionSecret", "")
	v.SetDefault("cookieSecure", false)
	v.SetDefault("logLevel", "info")
}

func (c *cli) initializeConfig(cmd *cobra.Command) error {
	v := c.v
	setViperDefaults(v)

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pressroom")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PRESSROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && c.cfgFile == "":
		case errors.Is(err, os.ErrNotExist), errors.As(err, &notFound):
			return fmt.Errorf("config file %s not found: %w", c.cfgFile, err)
		default:
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if c.cfg.SessionSecret == "" {
		c.cfg.SessionSecret = pressroom.EnvOr("SESSION_SECRET", "")
	}

	level, err := log.ParseLevel(v.GetString("logLevel"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", v.GetString("logLevel"), err)
	}
	c.logger = pressroom.NewLogger(cmd.ErrOrStderr(), level)
	if used := v.ConfigFileUsed(); used != "" {
		c.logger.Debug("using config file", "path", used)
	}
	return nil
}

// library returns the content library for the loaded configuration.
func (c *cli) library() *pressroom.Library {
	return pressroom.NewLibrary(c.cfg, c.logger)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pressroom version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pressroom %s\n", version)
		},
	}
}
