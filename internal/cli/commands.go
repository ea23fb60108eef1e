package cli

import (
	"context"
	"errors"
	"mindmate/internal"
	"mindmate/internal/models"
	"mindmate/internal/services"
	"strings"

	"github.com/spf13/cobra"
)

func newMoodsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "moods",
		Short: "List the moods you can log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.formatter(cmd).Print(models.MoodOptions())
		},
	}
}

func newMoodCmd(opts *options) *cobra.Command {
	var (
		intensity int
		journal   string
	)
	cmd := &cobra.Command{
		Use:   "mood <name>",
		Short: "Log a mood and get a support message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(&opts.flags)
			if err != nil {
				return err
			}
			defer client.Close()

			w := client.Workflow
			if err := w.SelectMood(args[0]); err != nil {
				return errors.New(services.UserMessage(services.ViewMood, err))
			}
			if cmd.Flags().Changed("intensity") {
				if _, err := w.SetIntensity(intensity); err != nil {
					return err
				}
			}
			if err := w.SetJournal(journal); err != nil {
				return err
			}

			snap, submitErr := w.Submit(cmd.Context())
			var ve *services.ValidationError
			if errors.As(submitErr, &ve) {
				return errors.New(ve.Message)
			}
			if err := opts.formatter(cmd).Print(snap); err != nil {
				return err
			}
			if submitErr != nil {
				return errors.New(services.UserMessage(services.ViewMood, submitErr))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&intensity, "intensity", "i", models.DefaultIntensity, "Intensity from 1 to 10")
	cmd.Flags().StringVarP(&journal, "journal", "j", "", "Optional journal text")
	return cmd
}

func newDailyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Show today's summary with activities and a breathing exercise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *internal.Client) (any, error) {
				res, err := c.Daily.Load(ctx)
				if err != nil {
					return nil, errors.New(services.UserMessage(services.ViewDaily, err))
				}
				return res, nil
			})
		},
	}
}

func newWeeklyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly",
		Short: "Show weekly insights: common emotions, trend and habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *internal.Client) (any, error) {
				res, err := c.Weekly.Load(ctx)
				if err != nil {
					return nil, errors.New(services.UserMessage(services.ViewWeekly, err))
				}
				return res, nil
			})
		},
	}
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <journal text>",
		Short: "Infer emotions from journal text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *internal.Client) (any, error) {
				res, err := c.Service.AnalyzeJournal(ctx, strings.Join(args, " "))
				if err != nil {
					return nil, errors.New(services.UserMessage(services.ViewAnalyze, err))
				}
				return res, nil
			})
		},
	}
}

func newAffirmCmd(opts *options) *cobra.Command {
	var (
		emotion   string
		intensity int
		triggers  []string
	)
	cmd := &cobra.Command{
		Use:   "affirm",
		Short: "Get a personal affirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *internal.Client) (any, error) {
				res, err := c.Service.Affirmation(ctx, emotion, intensity, triggers)
				if err != nil {
					return nil, errors.New(services.UserMessage(services.ViewAffirm, err))
				}
				return AffirmationResult{Affirmation: res}, nil
			})
		},
	}
	cmd.Flags().StringVarP(&emotion, "emotion", "e", "calm", "Emotion to address")
	cmd.Flags().IntVarP(&intensity, "intensity", "i", models.DefaultIntensity, "Intensity from 1 to 10")
	cmd.Flags().StringSliceVarP(&triggers, "trigger", "t", nil, "Detected trigger (repeatable)")
	return cmd
}

func newTriggersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "triggers",
		Short: "List triggers that keep coming back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *internal.Client) (any, error) {
				res, err := c.Service.RepeatingTriggers(ctx)
				if err != nil {
					return nil, errors.New(services.UserMessage(services.ViewTriggers, err))
				}
				return TriggersResult{Triggers: res}, nil
			})
		},
	}
}

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withClient(cmd, func(ctx context.Context, c *internal.Client) (any, error) {
				return HealthResult{Status: c.Service.Health(ctx)}, nil
			})
		},
	}
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(&opts.flags)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}
