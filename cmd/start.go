package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agubarev/warden/internal/core"
	"github.com/agubarev/warden/internal/server"
	"github.com/agubarev/warden/pkg/item"
	"github.com/agubarev/warden/pkg/password"
	"github.com/agubarev/warden/pkg/security/auth"
	"github.com/agubarev/warden/pkg/user"
	"github.com/agubarev/warden/pkg/util"
	"github.com/allegro/bigcache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the warden server.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Fatal(start())
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().String("addr", ":8080", "address to listen on")
	startCmd.Flags().Bool("demo", false, "seed demo users and items")
	startCmd.Flags().Bool("debug", false, "verbose logging")

	viper.BindPFlag("addr", startCmd.Flags().Lookup("addr"))
	viper.BindPFlag("demo", startCmd.Flags().Lookup("demo"))
	viper.BindPFlag("debug", startCmd.Flags().Lookup("debug"))

	viper.SetDefault("token_ttl", auth.DefaultAccessTokenTTL)
}

func start() error {
	logger, err := util.DefaultLogger(viper.GetBool("debug"), viper.GetString("log_dir"))
	if err != nil {
		return err
	}

	secret := viper.GetString("secret")
	if secret == "" {
		return auth.ErrEmptySecret
	}

	tokenTTL := viper.GetDuration("token_ttl")

	//---------------------------------------------------------------------------
	// wiring the managers
	//---------------------------------------------------------------------------
	pm, err := password.NewDefaultManager(password.NewMemoryStore())
	if err != nil {
		return err
	}

	um, err := user.NewManager(user.NewMemoryStore(), pm)
	if err != nil {
		return err
	}

	um.SetLogger(logger)

	// revoked tokens need to outlive their own expiry, nothing more
	blacklist, err := auth.NewDefaultCache(bigcache.DefaultConfig(tokenTTL + time.Minute))
	if err != nil {
		return err
	}

	authn, err := auth.NewAuthenticator(um, blacklist, []byte(secret), tokenTTL)
	if err != nil {
		return err
	}

	authn.SetLogger(logger)

	c, err := core.New(um, item.NewMemoryStore(), authn)
	if err != nil {
		return err
	}

	c.SetLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if viper.GetBool("demo") {
		if err = c.SeedDemo(ctx); err != nil {
			return err
		}
	}

	// cancelling the context on SIGINT/SIGTERM
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	return server.Run(ctx, c, viper.GetString("addr"))
}
