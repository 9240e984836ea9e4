package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/benoitkugler/figtemplate/disks"
	"github.com/benoitkugler/figtemplate/figstyle"
	"github.com/benoitkugler/figtemplate/figsvg"
	"github.com/benoitkugler/figtemplate/internal/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	success = color.New(color.FgGreen)
	heading = color.New(color.Bold)
)

func newRootCmd() *cobra.Command {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:   "figtemplate",
		Short: "Draws the sample figure of the chapter template",
		Long: `figtemplate applies the academic plotting style (serif fonts, TeX labels,
inward ticks on all sides) and draws three diagrams: a punctured open disk,
a punctured closed disk and a circle boundary.

Flag defaults may be given by the FIGTEMPLATE_OUTPUT, FIGTEMPLATE_FORMAT,
FIGTEMPLATE_BACKEND, FIGTEMPLATE_DPI and FIGTEMPLATE_USETEX environment
variables, optionally read from a .env file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := cfg.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

			if err := loadEnvFile(cfg.envFile); err != nil {
				return err
			}
			return cfg.applyEnv(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := cfg.drawOptions()
			if err != nil {
				return err
			}
			cfg.setupStyle()
			path, err := disks.Draw(opts)
			if err != nil {
				return fmt.Errorf("drawing sample figure: %w", err)
			}
			success.Fprintf(cmd.OutOrStdout(), "Saved sample figure to %s\n", path)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.envFile, "env", "", "dotenv file providing the defaults (default .env, if present)")
	pf.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logs")
	pf.StringVar(&cfg.logFormat, "log-format", "text", "log output: text or json")
	pf.BoolVar(&cfg.noTeX, "no-tex", false, "render labels verbatim instead of typesetting TeX")

	f := rootCmd.Flags()
	f.StringVarP(&cfg.output, "output", "o", "", "output file (default "+disks.DefaultPath+")")
	f.StringVar(&cfg.format, "format", "", "output format: pdf, svg or png (default from the output extension)")
	f.StringVar(&cfg.backend, "backend", "", "PDF writer: gofpdf or contentstream (default gofpdf)")
	f.Float64Var(&cfg.dpi, "dpi", 0, "resolution of PNG output (default from the style)")

	rootCmd.AddCommand(newStyleCmd(cfg), newInspectCmd())
	return rootCmd
}

func newStyleCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "style",
		Short: "Prints the plotting parameters after applying the academic style",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg.setupStyle()
			printParams(cmd, figstyle.Current())
		},
	}
}

func printParams(cmd *cobra.Command, p figstyle.Params) {
	out := cmd.OutOrStdout()
	heading.Fprintln(out, "Plotting parameters")
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "text.usetex\t%t\n", p.UseTeX)
	fmt.Fprintf(w, "font.family\t%s\n", p.FontFamily)
	fmt.Fprintf(w, "font.serif\t%q\n", p.FontSerif)
	fmt.Fprintf(w, "xtick.direction\t%s\n", p.XTickDirection)
	fmt.Fprintf(w, "ytick.direction\t%s\n", p.YTickDirection)
	fmt.Fprintf(w, "xtick.top\t%t\n", p.XTickTop)
	fmt.Fprintf(w, "ytick.right\t%t\n", p.YTickRight)
	fmt.Fprintf(w, "font.size\t%g\n", p.FontSize)
	fmt.Fprintf(w, "axes.labelsize\t%g\n", p.AxesLabelSize)
	fmt.Fprintf(w, "legend.fontsize\t%g\n", p.LegendFontSize)
	fmt.Fprintf(w, "figure.figsize\t%g x %g\n", p.FigSize[0], p.FigSize[1])
	fmt.Fprintf(w, "axes.grid\t%t\n", p.AxesGrid)
	w.Flush()
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.svg>",
		Short: "Summarizes the structure of an SVG figure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(file, logging.FromContext(cmd.Context()), "inspect")

			sum, err := figsvg.Inspect(file)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			heading.Fprintln(out, args[0])
			fmt.Fprintf(out, "size:   %g x %g\n", sum.Width, sum.Height)
			fmt.Fprintf(out, "axes:   %d\n", sum.Axes)
			fmt.Fprintf(out, "groups: %d\n", sum.Groups)
			fmt.Fprintf(out, "paths:  %d\n", sum.Paths)
			for _, title := range sum.Titles {
				fmt.Fprintf(out, "label:  %s\n", title)
			}
			return nil
		},
	}
}
