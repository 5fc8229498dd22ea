package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"keylock/clock"
)

var myBuild string

var (
	cfgFile  string
	holdOpen bool
)

var rootCmd = &cobra.Command{
	Use:          "keylock",
	Short:        "Joystick keypad access lock",
	SilenceUsage: true,
	RunE:         runLock,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lock (default)",
	RunE:  runLock,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config file and print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgFile)
		if err != nil {
			return err
		}
		out, err := cfg.redacted()
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s", out)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "keylock build %s\n", myBuild)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "cfg", "keylock.cfg", "Config file")
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().BoolVar(&holdOpen, "holdopen", false, "Hold the latch open until interrupted")
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func runLock(cmd *cobra.Command, args []string) error {
	fmt.Printf("keylock build %s\n", myBuild)

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	app, err := newApp(cfg, clock.Real{})
	if err != nil {
		log.Fatalf("Init: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("Shutting down...")
		cancel()
	}()

	if holdOpen {
		err = app.HoldOpen(ctx)
	} else {
		err = app.Run(ctx)
	}

	app.Close()
	fmt.Println("Shutdown complete")
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
