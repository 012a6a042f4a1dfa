package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/lab-utils/internal/calc"
	"github.com/BuzzLyutic/lab-utils/internal/crawler"
	"github.com/BuzzLyutic/lab-utils/internal/fib"
	"github.com/BuzzLyutic/lab-utils/internal/model"
	"github.com/BuzzLyutic/lab-utils/internal/shell"
)

type rootOptions struct {
	verbose bool
	timeout time.Duration
	delay   time.Duration
	logger  *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "labctl",
		Short:         "Run the lab utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				return nil
			}
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "command / request timeout (0 = default)")
	root.PersistentFlags().DurationVar(&opts.delay, "delay", crawler.DefaultDelay, "pause before each download request")

	root.AddCommand(
		newSumCmd(),
		newDivideCmd(),
		newAverageCmd(),
		newFibCmd(),
		newEchoCmd(opts),
		newTaskCmd(),
		newTitlesCmd(opts),
		newDownloadCmd(opts),
	)
	return root
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(cmd *cobra.Command, result float64, err error) error {
	if err == nil {
		result, err = calc.Finite(result)
	}
	if err != nil {
		return err
	}
	return printJSON(cmd, map[string]float64{"result": result})
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
		out = append(out, f)
	}
	return out, nil
}

func newSumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sum A B",
		Short: "Add two numbers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseFloats(args)
			if err != nil {
				return err
			}
			return printResult(cmd, calc.Sum(n[0], n[1]), nil)
		},
	}
}

func newDivideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "divide NUMERATOR DENOMINATOR",
		Short: "Divide two numbers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseFloats(args)
			if err != nil {
				return err
			}
			result, err := calc.Divide(n[0], n[1])
			return printResult(cmd, result, err)
		},
	}
}

func newAverageCmd() *cobra.Command {
	var raw string
	cmd := &cobra.Command{
		Use:   "average [N...]",
		Short: "Average a list of numbers (0 for none)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var input interface{}
			if raw != "" {
				if err := json.Unmarshal([]byte(raw), &input); err != nil {
					return fmt.Errorf("invalid --json value: %w", err)
				}
			} else {
				n, err := parseFloats(args)
				if err != nil {
					return err
				}
				input = n
			}

			result, err := calc.AverageOf(input)
			return printResult(cmd, result, err)
		},
	}
	cmd.Flags().StringVar(&raw, "json", "", "read the input as a JSON value instead of arguments")
	return cmd
}

func newFibCmd() *cobra.Command {
	var naive bool
	cmd := &cobra.Command{
		Use:   "fib N",
		Short: "Compute the Nth Fibonacci number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%q is not an integer", args[0])
			}

			start := time.Now()
			var result uint64
			if naive {
				if n < 0 {
					return fib.ErrNegative
				}
				if n > fib.MaxN {
					return fib.ErrOverflow
				}
				result = fib.Naive(n)
			} else if result, err = fib.NewMemo().Get(n); err != nil {
				return err
			}

			return printJSON(cmd, map[string]interface{}{
				"n":       n,
				"result":  result,
				"elapsed": time.Since(start).String(),
			})
		},
	}
	cmd.Flags().BoolVar(&naive, "naive", false, "use the uncached recursive version")
	return cmd
}

func newEchoCmd(opts *rootOptions) *cobra.Command {
	var viaShell bool
	cmd := &cobra.Command{
		Use:   "echo TEXT...",
		Short: "Echo text through the system echo command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := shell.NewRunner(opts.logger, opts.timeout)
			text := strings.Join(args, " ")

			run := runner.Echo
			if viaShell {
				run = runner.ShellEcho
			}
			out, err := run(cmd.Context(), text)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"output": out})
		},
	}
	cmd.Flags().BoolVar(&viaShell, "shell", false, "run through sh -c with the text quoted")
	return cmd
}

func newTaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "task",
		Short: "Print an empty task record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, model.NewEmptyTask())
		},
	}
}

func newTitlesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "titles URL",
		Short: "Print the h1 titles of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := crawler.New(opts.logger, crawler.Config{Timeout: opts.timeout})
			return printJSON(cmd, map[string][]string{"titles": client.FetchTitles(cmd.Context(), args[0])})
		},
	}
}

func newDownloadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "download URL...",
		Short: "Download pages one at a time with a pause before each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := crawler.New(opts.logger, crawler.Config{Timeout: opts.timeout, Delay: opts.delay})
			return printJSON(cmd, map[string][]*string{"results": client.Download(cmd.Context(), args)})
		},
	}
}
