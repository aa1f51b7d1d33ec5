package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dszqbsm/hoopstat/cmd/parse"
	"github.com/dszqbsm/hoopstat/page"
	_ "github.com/dszqbsm/hoopstat/pagelib"
	"github.com/dszqbsm/hoopstat/urls"
	"github.com/dszqbsm/hoopstat/version"
	"github.com/spf13/cobra"
)

// parse用于提取页面，kinds列出已注册的页面类型，url按模板拼出页面地址，version打印版本信息

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "list page kinds.",
	Long:  "list built-in page kinds with their backends and fields.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, k := range page.Store.List {
			backends := make([]string, 0, len(k.Backends))
			for _, b := range k.Backends {
				backends = append(backends, string(b))
			}
			fmt.Fprintf(out, "%-10s [%s] %s\n", k.Name, strings.Join(backends, ","), strings.Join(k.Fields, ","))
		}
	},
}

var urlCmd = &cobra.Command{
	Use:   "url <kind> [args...]",
	Short: "print page url.",
	Long: `print the url of a page:
  url teams | leagues | players
  url summary <league> <endYear>
  url schedule <league> <endYear> <month>
  url boxscore <2006-01-02> <homeAbbr>`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := pageURL(args[0], args[1:])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), u)
		return nil
	},
}

func pageURL(kind string, args []string) (string, error) {
	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("url %s: want %d arguments, got %d", kind, n, len(args))
		}
		return nil
	}
	switch kind {
	case "teams":
		return urls.Teams(), need(0)
	case "leagues":
		return urls.Leagues(), need(0)
	case "players", "playerdir":
		return urls.Players(), need(0)
	case "summary":
		if err := need(2); err != nil {
			return "", err
		}
		year, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("url summary: year: %w", err)
		}
		return urls.SeasonSummary(args[0], year), nil
	case "schedule":
		if err := need(3); err != nil {
			return "", err
		}
		year, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("url schedule: year: %w", err)
		}
		month, err := time.Parse("January", args[2])
		if err != nil {
			return "", fmt.Errorf("url schedule: month: %w", err)
		}
		return urls.SeasonSchedule(args[0], year, month.Month()), nil
	case "boxscore":
		if err := need(2); err != nil {
			return "", err
		}
		date, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return "", fmt.Errorf("url boxscore: date: %w", err)
		}
		return urls.BoxScore(date, args[1]), nil
	}
	return "", fmt.Errorf("url: no template for %q", kind)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version.",
	Long:  "print version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version.Printer(cmd.OutOrStdout())
	},
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hoopstat",
		Short:         "extract structured data from basketball-reference pages.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(parse.ParseCmd, kindsCmd, urlCmd, versionCmd)
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hoopstat:", err)
		os.Exit(1)
	}
}
