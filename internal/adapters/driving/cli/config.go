package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long:  `Show and change the settings stored in config.toml.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func requireSettingsService() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	return render(cmd, settingsService.Get(), func() {
		if path := settingsService.Path(); path != "" {
			cmd.Printf("# %s\n", path)
		}
		for _, key := range settingsService.Keys() {
			value, err := settingsService.Value(key)
			if err != nil {
				continue
			}
			cmd.Printf("%s = %s\n", key, value)
		}
	})
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	value, err := settingsService.Value(args[0])
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", args[0], err)
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}
