package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// repositorySlug is where releases are published
const repositorySlug = "ItsGosho/hydrachain-explorer-requester"

var (
	checkOnly bool
	assumeYes bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hydra-explorer %s (built %s)\n", version, buildTime)
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update hydra-explorer to the latest release",
	Long: `Check GitHub for a newer release and replace the running binary with it.

Examples:
  hydra-explorer update           # Check and install the latest release
  hydra-explorer update --check   # Only report whether an update exists`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only check for updates, don't install")
	updateCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "install without asking")

	rootCmd.AddCommand(versionCmd, updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	fmt.Printf("Current version: %s\n", headingColor.Sprint("v"+current.String()))

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		fmt.Println("No release found for this platform")
		return nil
	}

	latestVersion, err := semver.ParseTolerant(latest.Version())
	if err != nil {
		return fmt.Errorf("invalid release version %q: %w", latest.Version(), err)
	}

	if latestVersion.LTE(current) {
		fmt.Printf("You're running the latest version (%s)\n", countColor.Sprint("v"+current.String()))
		return nil
	}

	fmt.Printf("New version available: %s (released %s)\n",
		countColor.Sprint("v"+latestVersion.String()),
		latest.PublishedAt.Format("January 2, 2006"))
	if latest.ReleaseNotes != "" {
		fmt.Println()
		printHeading(os.Stdout, "Release notes")
		fmt.Println(latest.ReleaseNotes)
	}

	if checkOnly {
		fmt.Printf("Run '%s' to install the update\n", warnColor.Sprint("hydra-explorer update"))
		return nil
	}

	if !assumeYes && !confirm(fmt.Sprintf("Install v%s? [y/N]: ", latestVersion)) {
		fmt.Println("Update cancelled")
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	logger.Debug().
		Str("asset", latest.AssetName).
		Str("url", latest.AssetURL).
		Str("path", exe).
		Msg("Installing release")

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to install update: %w", err)
	}

	fmt.Printf("Updated to %s\n", countColor.Sprint("v"+latestVersion.String()))
	return nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)

	response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
