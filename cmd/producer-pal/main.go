package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adamjmurray/producer-pal-sub001/config"
	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/server"
	"github.com/adamjmurray/producer-pal-sub001/tools"
)

var (
	flagAddr   string
	flagBridge string
)

var rootCmd = &cobra.Command{
	Use:   "producer-pal",
	Short: "Control surface for a live host session",
	Long:  `Producer Pal exposes duplicate, delete and transform tools over HTTP, executing them against a host DAW session through the device bridge.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool API against the host session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP bind address (overrides PRODUCER_PAL_ADDR)")
	serveCmd.Flags().StringVar(&flagBridge, "bridge", "", "UDP address of the host device bridge (overrides PRODUCER_PAL_BRIDGE)")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: Could not load .env file: %v", err)
		log.Println("   Continuing with environment variables...")
	}

	cfg := config.FromEnv()
	if flagAddr != "" {
		cfg.HTTPAddr = flagAddr
	}
	if flagBridge != "" {
		cfg.BridgeAddr = flagBridge
	}

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
		})
		if err != nil {
			log.Printf("⚠️  Warning: Sentry init failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	bridge, err := live.DialBridge(cfg.BridgeAddr)
	if err != nil {
		return err
	}
	defer bridge.Close()

	engine := tools.NewEngine(bridge, cfg)
	srv := server.New(engine)

	log.Printf("🎛️  Producer Pal listening on %s (bridge %s)", cfg.HTTPAddr, cfg.BridgeAddr)
	return http.ListenAndServe(cfg.HTTPAddr, srv)
}
