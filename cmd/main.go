package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"posture-monitor/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "posture-monitor",
		Short:         "Webcam posture monitor",
		Long:          "Watches the face position in front of the webcam and warns about bad posture.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(serveCommand(), displayCommand())
	return root
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Stream the annotated camera feed over HTTP",
		Long:  "Serves an index page, an MJPEG feed at /video_feed, JSON status and Prometheus metrics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			return rt.Serve(cmd.Context())
		},
	}
}

func displayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "display",
		Short: "Show the annotated camera feed in a desktop window",
		Long:  "Opens an OpenCV window with the annotated feed. Press q in the window to quit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			return rt.Display(cmd.Context())
		},
	}
}
