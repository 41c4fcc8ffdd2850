package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/petrijr/draftflow"
	"github.com/petrijr/draftflow/internal/config"
	"github.com/petrijr/draftflow/pkg/autosave"
	"github.com/petrijr/draftflow/pkg/workflow"
)

// app carries what every subcommand needs once the root pre-run has loaded
// the configuration and opened the store.
type app struct {
	configPath string
	clock      draftflow.Clock

	cfg        config.Config
	sess       *draftflow.Session
	closeStore closeFunc
}

// Execute runs the CLI with args and returns the command error, which has
// already been printed.
func Execute(ctx context.Context, args []string) error {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	defer a.close()
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "draftflow",
		Short:        "Walk a content draft through keyword, title, content and publish",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context(), cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			// A one-shot process never waits out the debounce window.
			if a.sess.Autosave.Status().HasUnsavedChanges {
				a.sess.Autosave.SaveNow(cmd.Context())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "draftflow.yaml", "Path to the YAML configuration file")

	root.AddCommand(
		newShowCmd(a),
		newKeywordCmd(a),
		newTitleCmd(a),
		newContentCmd(a),
		newSettingsCmd(a),
		newNextCmd(a),
		newPrevCmd(a),
		newGotoCmd(a),
		newResetCmd(a),
		newSaveCmd(a),
		newRestoreCmd(a),
		newClearCmd(a),
		newInspectCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context, logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(logOut, cfg.Log)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	a.closeStore = closeStore

	sess, err := draftflow.NewSession(ctx, store, draftflow.SessionConfig{
		AutosaveKey:      cfg.Autosave.Key,
		AutosaveInterval: cfg.Autosave.Interval,
		AutosaveEnabled:  autosave.Bool(cfg.Autosave.Enabled),
		Clock:            a.clock,
		Observer:         draftflow.NewLoggingObserver(logger),
	})
	if err != nil {
		return err
	}
	a.sess = sess
	return nil
}

func (a *app) close() {
	if a.sess != nil {
		a.sess.Close()
	}
	if a.closeStore != nil {
		_ = a.closeStore()
	}
}

func (a *app) now() time.Time {
	if a.clock != nil {
		return a.clock.Now()
	}
	return time.Now()
}

func (a *app) printState(w io.Writer) {
	m := a.sess.Machine
	st := m.State()

	fmt.Fprintf(w, "step:     %s (%d/%d)\n", st.CurrentStep, st.CurrentStep.Index()+1, len(workflow.Steps))
	fmt.Fprintf(w, "progress: %d%%\n", m.StepProgress())
	fmt.Fprintf(w, "keyword:  %s\n", orDash(st.SelectedKeyword))
	fmt.Fprintf(w, "title:    %s\n", orDash(st.SelectedTitle))
	fmt.Fprintf(w, "content:  %d chars\n", len(st.GeneratedContent))
	fmt.Fprintf(w, "settings: tone=%s length=%s language=%s\n", st.Settings.Tone, st.Settings.Length, st.Settings.Language)
	fmt.Fprintf(w, "history:  %d entries\n", st.History.Len())
	fmt.Fprintf(w, "draft:    %s\n", a.sess.Indicator(context.Background()).Render(a.now()))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current workflow state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printState(cmd.OutOrStdout())
			return nil
		},
	}
}

func newKeywordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keyword <keyword>",
		Short: "Select the target keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.sess.Machine.SetKeyword(cmd.Context(), args[0])
			a.printState(cmd.OutOrStdout())
			return nil
		},
	}
}

func newTitleCmd(a *app) *cobra.Command {
	var candidates []string
	cmd := &cobra.Command{
		Use:   "title [title]",
		Short: "Select a title, or record generated title candidates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(candidates) == 0 {
				return errors.New("give a title or at least one --candidate")
			}
			ctx := cmd.Context()
			if len(candidates) > 0 {
				a.sess.Machine.SetTitles(ctx, candidates)
			}
			if len(args) == 1 {
				a.sess.Machine.SetTitle(ctx, args[0])
			}
			a.printState(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&candidates, "candidate", nil, "Generated title candidate (repeatable)")
	return cmd
}

func newContentCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "content [text]",
		Short: "Set the generated content from an argument or a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content string
			switch {
			case file != "" && len(args) > 0:
				return errors.New("give either text or --file, not both")
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read content: %w", err)
				}
				content = string(data)
			case len(args) == 1:
				content = args[0]
			default:
				return errors.New("give the content text or --file")
			}
			a.sess.Machine.SetContent(cmd.Context(), content)
			a.printState(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the content from this file")
	return cmd
}

func newSettingsCmd(a *app) *cobra.Command {
	var tone, length, language string
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Change tone, length or language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch workflow.SettingsPatch
			if cmd.Flags().Changed("tone") {
				patch.Tone = workflow.Setting(tone)
			}
			if cmd.Flags().Changed("length") {
				patch.Length = workflow.Setting(length)
			}
			if cmd.Flags().Changed("language") {
				patch.Language = workflow.Setting(language)
			}
			if patch == (workflow.SettingsPatch{}) {
				a.printState(cmd.OutOrStdout())
				return nil
			}
			a.sess.Machine.UpdateSettings(cmd.Context(), patch)
			a.printState(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVar(&tone, "tone", "", "Writing tone")
	cmd.Flags().StringVar(&length, "length", "", "Article length")
	cmd.Flags().StringVar(&language, "language", "", "Article language")
	return cmd
}

func newNextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Advance one step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.sess.Machine.NextStep(cmd.Context())
			a.printState(cmd.OutOrStdout())
			return nil
		},
	}
}

func newPrevCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Go back one step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.sess.Machine.PrevStep(cmd.Context())
			a.printState(cmd.OutOrStdout())
			return nil
		},
	}
}

func newGotoCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:       "goto <step>",
		Short:     "Jump to a step if its prerequisites are met",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"keyword", "title", "content", "publish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			step, ok := workflow.ParseStep(args[0])
			if !ok {
				return fmt.Errorf("unknown step %q", args[0])
			}
			ctx := cmd.Context()
			if force {
				a.sess.Machine.GoToStep(ctx, step)
			} else if !a.sess.Machine.Navigate(ctx, step) {
				return fmt.Errorf("cannot go to %s yet: earlier steps are incomplete", step)
			}
			a.printState(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Skip the prerequisite check")
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Start over from the keyword step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.sess.Machine.Reset(cmd.Context())
			a.printState(cmd.OutOrStdout())
			return nil
		},
	}
}

func newSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Save the current draft now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.sess.SaveDraft(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), a.sess.Indicator(cmd.Context()).Render(a.now()))
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Show the saved draft, and apply it with --apply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			rec, ok := a.sess.RestoreDraft(ctx)
			if !ok {
				fmt.Fprintln(out, "no saved draft")
				return nil
			}
			fmt.Fprintf(out, "saved draft from %s\n", rec.SavedAt().Local().Format(time.DateTime))
			fmt.Fprintf(out, "keyword: %s\ntitle:   %s\ncontent: %d chars\n",
				orDash(rec.Data.Keyword), orDash(rec.Data.Title), len(rec.Data.Content))
			if apply {
				a.sess.ApplyDraft(ctx, rec)
				fmt.Fprintln(out, "applied")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "Copy the saved draft into the workflow")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.sess.Autosave.ClearSavedData(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "draft cleared")
			return nil
		},
	}
}

func newInspectCmd(a *app) *cobra.Command {
	var draft bool
	cmd := &cobra.Command{
		Use:   "inspect [path]",
		Short: "Print the stored JSON, or the value at a gjson path",
		Long: `Print the stored workflow state (or, with --draft, the saved draft record).
An optional gjson path selects part of the document, for example
"history.#.step" or "settings.tone".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := workflow.StorageKey
			if draft {
				key = autosave.StorageKey(a.cfg.Autosave.Key)
			}
			raw, err := a.sess.Store().Get(cmd.Context(), key)
			if errors.Is(err, draftflow.ErrKeyNotFound) {
				return fmt.Errorf("nothing stored under %q", key)
			}
			if err != nil {
				return fmt.Errorf("read %q: %w", key, err)
			}
			if !gjson.Valid(raw) {
				return fmt.Errorf("value under %q is not valid JSON", key)
			}

			path := "@pretty"
			if len(args) == 1 {
				path = strings.TrimSpace(args[0])
			}
			res := gjson.Get(raw, path)
			if !res.Exists() {
				return fmt.Errorf("path %q matches nothing", path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(res.String(), "\n"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&draft, "draft", false, "Inspect the saved draft record instead of the workflow state")
	return cmd
}
