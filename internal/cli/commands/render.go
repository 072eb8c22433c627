package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/capreport/internal/logging"
	"github.com/ccollicutt/capreport/pkg/config"
	"github.com/ccollicutt/capreport/pkg/output"
	"github.com/ccollicutt/capreport/pkg/result"
	"github.com/ccollicutt/capreport/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// RenderOptions holds command-line options for the render command.
type RenderOptions struct {
	Output      string
	Rules       []string
	Quiet       bool
	Color       string
	ShowLibrary bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <document>...",
		Short: "Render match results as a verbose report",
		Long: `Render one or more capability match result documents (JSON, or YAML for
.yaml/.yml files). Arguments may be glob patterns.

For every matched rule the report shows the rule name, its metadata and,
for each location where it matched, the tree of statements and features
that were satisfied.

Exit codes:
  0 - No capability matched
  1 - At least one capability matched
  2 - Configuration, decoding or rendering error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (vverbose|json)")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Render specific rule(s) only (can be repeated)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no match trees")
	cmd.Flags().StringVar(&opts.Color, "color", string(config.DefaultColor), "Colorize output (auto|always|never)")
	cmd.Flags().BoolVar(&opts.ShowLibrary, "show-lib", false, "Include library and subscope rules")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnMatch), "When to fire webhook (on_match|always|never)")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := logging.GetLogger("render")

	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg, opts); err != nil {
		return err
	}

	files, err := result.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding documents: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents matched patterns: %v", args)
	}

	w := cmd.OutOrStdout()
	formatter, err := createFormatter(cfg, opts.Quiet, isTerminal(w))
	if err != nil {
		return err
	}

	sel := result.SelectOptions{
		IncludeLibrary: cfg.ShowLibraryRules,
		Only:           cfg.Rules,
	}
	client := webhook.NewClient()

	for i, path := range files {
		doc, err := result.Load(ctx, path)
		if err != nil {
			return err
		}

		report := output.NewReport(doc, path, sel)
		log.Debug().
			Str("document", path).
			Int("rules", report.Summary.RulesTotal).
			Int("capabilities", report.Summary.CapabilitiesMatched).
			Msg("rendering")

		if len(files) > 1 && formatter.Name() == config.OutputVerbose {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}
			_, _ = fmt.Fprintf(w, "== %s ==\n", path)
		}

		if err := formatter.Format(ctx, report, w); err != nil {
			return fmt.Errorf("formatting %s: %w", path, err)
		}

		// webhook failures are logged but never fail the render
		client.Notify(ctx, report, cfg.Webhooks)

		if report.HasMatches() {
			ExitCode = 1
		}
	}

	return nil
}

// loadConfig loads the file named by --config, or the discovered default.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	var path string
	if f := cmd.Flags().Lookup("config"); f != nil {
		path = f.Value.String()
	}

	cfg, err := config.LoadOrDefault(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyFlags overrides configuration values with explicitly set flags and
// validates the result.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *RenderOptions) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("color") {
		cfg.Color = config.ColorMode(opts.Color)
	}
	if flags.Changed("show-lib") {
		cfg.ShowLibraryRules = opts.ShowLibrary
	}
	if flags.Changed("rule") {
		cfg.Rules = opts.Rules
	}
	cfg.Webhooks = collectWebhooks(cfg, opts)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

func createFormatter(cfg *config.Config, quiet, terminal bool) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Quiet:         quiet,
		Color:         cfg.Color.Enabled(terminal),
		IndentWidth:   cfg.IndentWidth,
		LocationLimit: cfg.LocationLimit,
	}

	switch cfg.Output {
	case config.OutputVerbose:
		return output.NewTextFormatter(formatOpts), nil
	case config.OutputJSON:
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use vverbose or json)", cfg.Output)
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *RenderOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnMatch
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
		})
	}

	return webhooks
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
