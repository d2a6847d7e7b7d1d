package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Conceptual-Machines/musicbrain-api/internal/bridge"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		requestFile string
		technical   string
	)
	flags := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate music from an emotional intent",
		Long: `Build a generate request from flags, or read one from --request
(a JSON file, or - for stdin). Unset flags are sent as null.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req bridge.GenerateRequest
			if requestFile != "" {
				data, err := readInput(cmd.InOrStdin(), requestFile)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(data, &req); err != nil {
					return fmt.Errorf("invalid request JSON: %w", err)
				}
			} else {
				intent := bridge.EmotionalIntent{
					BaseEmotion:     changed(cmd, "base-emotion", flags),
					Intensity:       changed(cmd, "intensity", flags),
					SpecificEmotion: changed(cmd, "specific-emotion", flags),
					CoreWound:       changed(cmd, "core-wound", flags),
					CoreDesire:      changed(cmd, "core-desire", flags),
					EmotionalIntent: changed(cmd, "legacy-intent", flags),
				}
				if technical != "" {
					if !json.Valid([]byte(technical)) {
						return errors.New("--technical must be valid JSON")
					}
					intent.Technical = json.RawMessage(technical)
				}
				req = bridge.GenerateRequest{
					Intent:       intent,
					OutputFormat: changed(cmd, "format", flags),
				}
			}

			result, err := opts.gateway().GenerateMusic(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), result)
		},
	}

	stringFlag := func(name, usage string) {
		flags[name] = cmd.Flags().String(name, "", usage)
	}
	stringFlag("base-emotion", "base emotion, e.g. sad")
	stringFlag("intensity", "intensity of the base emotion")
	stringFlag("specific-emotion", "specific emotion within the base emotion")
	stringFlag("core-wound", "core wound")
	stringFlag("core-desire", "core desire")
	stringFlag("legacy-intent", "free-text emotional intent (deprecated field)")
	stringFlag("format", "output format, bridge default when unset")
	cmd.Flags().StringVar(&technical, "technical", "", "technical parameters as JSON")
	cmd.Flags().StringVar(&requestFile, "request", "", "read the whole request from a JSON file (- for stdin)")

	return cmd
}

func newInterrogateCmd(opts *rootOptions) *cobra.Command {
	var (
		sessionID   string
		contextJSON string
	)

	cmd := &cobra.Command{
		Use:   "interrogate [message]",
		Short: "Send one interrogation message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := bridge.InterrogateRequest{}
			if len(args) == 1 {
				req.Message = args[0]
			}
			if cmd.Flags().Changed("session") {
				req.SessionID = &sessionID
			}
			if contextJSON != "" {
				if !json.Valid([]byte(contextJSON)) {
					return errors.New("--context must be valid JSON")
				}
				req.Context = json.RawMessage(contextJSON)
			}

			result, err := opts.gateway().Interrogate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "continue this session (new session when unset)")
	cmd.Flags().StringVar(&contextJSON, "context", "", "context as JSON")
	return cmd
}

func newEmotionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "emotions",
		Short: "Print the emotion catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := opts.gateway().GetEmotions(cmd.Context())
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), result)
		},
	}
}

// changed returns the flag's value only when the user set it
func changed(cmd *cobra.Command, name string, flags map[string]*string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v := *flags[name]
	return &v
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
