package main

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"karolbroda.com/lyricsync/internal/colors"
	"karolbroda.com/lyricsync/internal/player"
)

const mprisPrefix = "org.mpris.MediaPlayer2."

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "mpris player utilities",
	Long:  `discover mpris-compatible music players that can drive the viewer.`,
}

var playerListCmd = &cobra.Command{
	Use:   "list",
	Short: "list available mpris players",
	Long:  `list all mpris-compatible music players currently running on the system.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bus, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		defer bus.Close()

		var names []string
		err = bus.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
		if err != nil {
			return fmt.Errorf("failed to list dbus names: %w", err)
		}

		services := filterMprisServices(names)
		if len(services) == 0 {
			fmt.Println("no mpris players found")
			fmt.Println("\ncheck if your music player is running and supports mpris")
			return nil
		}

		fmt.Printf("found %d mpris player(s):\n\n", len(services))
		for _, service := range services {
			identity := getPlayerIdentity(bus, service)
			if identity != "" {
				fmt.Printf("  %s (%s)\n", service, identity)
			} else {
				fmt.Printf("  %s\n", service)
			}
		}

		fmt.Println("\nuse --source mpris --mpris-service <name> to follow one")

		return nil
	},
}

var playerCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "show currently playing track",
	Long:  `display information about the track playing in the configured mpris player.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		bus, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		defer bus.Close()

		service, err := player.NewService(bus, cfg.MprisService)
		if err != nil {
			return fmt.Errorf("failed to connect to player: %w", err)
		}

		info, err := service.GetCurrentTrack()
		if err != nil || info == nil || !info.IsValid() {
			fmt.Println("no track currently playing")
			return nil
		}

		fmt.Printf("title:    %s\n", info.Title)
		fmt.Printf("artist:   %s\n", info.Artist)
		if info.Album != "" {
			fmt.Printf("album:    %s\n", info.Album)
		}
		if info.DurationSecs > 0 {
			fmt.Printf("duration: %s\n", colors.FormatTime(info.DurationSecs))
		}

		position, err := service.Position()
		if err == nil && position > 0 {
			fmt.Printf("position: %s\n", colors.FormatTime(position))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(playerCmd)

	playerCmd.AddCommand(playerListCmd)
	playerCmd.AddCommand(playerCurrentCmd)
}

func filterMprisServices(names []string) []string {
	var services []string
	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			services = append(services, name)
		}
	}
	return services
}

func getPlayerIdentity(bus *dbus.Conn, serviceName string) string {
	obj := bus.Object(serviceName, "/org/mpris/MediaPlayer2")
	variant, err := obj.GetProperty("org.mpris.MediaPlayer2.Identity")
	if err != nil {
		return ""
	}

	identity, ok := variant.Value().(string)
	if !ok {
		return ""
	}

	return identity
}
