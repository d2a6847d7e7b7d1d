package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Conceptual-Machines/musicbrain-api/internal/bridge"
	"github.com/Conceptual-Machines/musicbrain-api/internal/catalog"
	"github.com/Conceptual-Machines/musicbrain-api/internal/config"
	"github.com/Conceptual-Machines/musicbrain-api/internal/gateway"
	"github.com/Conceptual-Machines/musicbrain-api/internal/jsoncache"
	"github.com/spf13/cobra"
)

// options shared by every subcommand
type rootOptions struct {
	url        string
	timeout    time.Duration
	catalogDir string
	compact    bool
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "musicbrainctl",
		Short: "Call the musicbrain commands from the terminal",
		Long: `musicbrainctl runs the same commands as the desktop app against a
musicbrain service and prints the JSON result.

Examples:
  musicbrainctl emotions
  musicbrainctl generate --base-emotion sad --intensity low --format midi
  musicbrainctl interrogate "I keep writing about leaving" --session abc
  musicbrainctl cache bench emotion_thesaurus/sad.json`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.url, "url", cfg.MusicbrainURL, "musicbrain service URL (MUSICBRAIN_URL)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.MusicbrainTimeout, "per-call timeout (MUSICBRAIN_TIMEOUT)")
	cmd.PersistentFlags().StringVar(&opts.catalogDir, "catalog-dir", cfg.EmotionCatalogDir, "serve emotions from this thesaurus directory (EMOTION_CATALOG_DIR)")
	cmd.PersistentFlags().BoolVar(&opts.compact, "compact", false, "print compact JSON")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newInterrogateCmd(opts),
		newEmotionsCmd(opts),
		newCacheCmd(),
	)
	return cmd
}

func (o *rootOptions) gateway() *gateway.Gateway {
	bridgeOpts := []bridge.Option{bridge.WithTimeout(o.timeout)}
	if o.catalogDir != "" {
		bridgeOpts = append(bridgeOpts, bridge.WithEmotionCatalog(catalog.New(o.catalogDir, jsoncache.New(0))))
	}
	return gateway.New(bridge.NewHTTPClient(o.url, bridgeOpts...))
}

func (o *rootOptions) print(w io.Writer, result json.RawMessage) error {
	if o.compact {
		var buf bytes.Buffer
		if err := json.Compact(&buf, result); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, buf.String())
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, result, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
