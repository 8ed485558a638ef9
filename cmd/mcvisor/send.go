package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcvisor/mcvisor-go/internal/rconsink"
)

var (
	// send flags
	sendHost string
	sendPort string
)

var sendCmd = &cobra.Command{
	Use:   "send <command...>",
	Short: "Send a console command over RCON",
	Long: `Send one console command to a running server over RCON and print the
reply. The server needs enable-rcon=true in server.properties.

The password is read from $` + EnvRCONPassword + `.

Examples:
  mcvisor send list
  mcvisor send --host mc.example.com say Restarting in 5 minutes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendHost, "host", "",
		"RCON host (default: config or 127.0.0.1)")
	sendCmd.Flags().StringVar(&sendPort, "port", "",
		"RCON port (default: config or "+rconsink.DefaultPort+")")

	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	host := firstNonEmpty(sendHost, cfg.RCON.Host, "127.0.0.1")
	port := firstNonEmpty(sendPort, cfg.RCON.Port, rconsink.DefaultPort)
	if cfg.RCON.Password == "" {
		return errors.New("rcon password is required: set $" + EnvRCONPassword)
	}

	sink := rconsink.New(host, port, cfg.RCON.Password, cfg.RCON.Timeout, newLogger())
	defer sink.Close()

	resp, err := sink.Execute(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if resp != "" {
		fmt.Fprintln(cmd.OutOrStdout(), resp)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
