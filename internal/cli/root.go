package cli

import (
	"context"
	"fmt"
	"mindmate/internal"
	"mindmate/internal/di"
	"mindmate/internal/structures"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	flags  structures.CliFlags
	format string

	newClient func(*structures.CliFlags) (*internal.Client, error)
	newApp    func(*structures.CliFlags) (*internal.App, error)
}

// NewRootCmd builds the mindmate command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{newClient: di.InitClient, newApp: di.InitApp})
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "mindmate",
		Short: "Track moods and read emotional insights from a MindMate backend",
		Long: `MindMate logs how you feel and turns your history into insights.

Quick Start:
  mindmate mood anxious --intensity 8      # log a mood and get support
  mindmate daily                           # today's summary
  mindmate weekly --format json            # weekly insights as JSON
  mindmate serve                           # run the local HTTP API`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ParseFormat(opts.format)
			return err
		},
	}

	root.PersistentFlags().StringVarP(&opts.flags.ConfigPath, "config", "c", "config.yaml", "Path to the config file")
	root.PersistentFlags().BoolVarP(&opts.flags.DebugMode, "debug", "d", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", string(FormatText), "Output format: text, json or yaml")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		newMoodsCmd(opts),
		newMoodCmd(opts),
		newDailyCmd(opts),
		newWeeklyCmd(opts),
		newAnalyzeCmd(opts),
		newAffirmCmd(opts),
		newTriggersCmd(opts),
		newHealthCmd(opts),
		newServeCmd(opts),
	)
	return root
}

func (o *options) formatter(cmd *cobra.Command) *Formatter {
	format, _ := ParseFormat(o.format)
	return NewFormatter(cmd.OutOrStdout(), format)
}

// withClient builds the client graph for one command and releases it after.
func (o *options) withClient(cmd *cobra.Command, run func(ctx context.Context, c *internal.Client) (any, error)) error {
	client, err := o.newClient(&o.flags)
	if err != nil {
		return err
	}
	defer client.Close()

	out, err := run(cmd.Context(), client)
	if err != nil {
		return err
	}
	return o.formatter(cmd).Print(out)
}
