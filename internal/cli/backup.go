package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/WireCut/internal/project"
)

func newBackupCmd(opts *rootOptions) *cobra.Command {
	var profilesPath string

	cmd := &cobra.Command{
		Use:   "backup <file.json>",
		Short: "Save the application config and custom profiles to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			profiles, err := project.LoadCustomProfiles(profilesPath)
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}
			if err := project.ExportAllData(args[0], cfg, profiles); err != nil {
				return err
			}
			log.WithFields(log.Fields{"file": args[0], "profiles": len(profiles)}).Info("backup written")
			return nil
		},
	}
	cmd.Flags().StringVar(&profilesPath, "profiles", project.DefaultProfilesPath(), "custom profiles file")
	return cmd
}

func newRestoreCmd(opts *rootOptions) *cobra.Command {
	var profilesPath string

	cmd := &cobra.Command{
		Use:   "restore <file.json>",
		Short: "Restore the application config and custom profiles from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.RestoreAllData(backup, opts.configPath, profilesPath); err != nil {
				return err
			}
			log.WithFields(log.Fields{"file": args[0], "created": backup.CreatedAt}).Info("backup restored")
			return nil
		},
	}
	cmd.Flags().StringVar(&profilesPath, "profiles", project.DefaultProfilesPath(), "custom profiles file")
	return cmd
}
