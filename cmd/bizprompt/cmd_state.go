package main

import (
	"fmt"
	"time"

	"bizprompt/cmd/bizprompt/ui"
	"bizprompt/internal/analytics"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorited prompts",
	RunE:  runFavoritesList,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorited prompts",
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add [prompt-id]",
	Short: "Add a prompt to favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := theApp.catalog.ByID(args[0]); !ok {
			return fmt.Errorf("unknown prompt %q", args[0])
		}
		theApp.favorites.Add(args[0])
		theApp.tracker.Track(analytics.FavoriteToggle(args[0], "add"))
		fmt.Printf("Favorited %q.\n", args[0])
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove [prompt-id]",
	Short: "Remove a prompt from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp.favorites.Remove(args[0])
		theApp.tracker.Track(analytics.FavoriteToggle(args[0], "remove"))
		fmt.Printf("Removed %q from favorites.\n", args[0])
		return nil
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle [prompt-id]",
	Short: "Toggle a prompt's favorite status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := theApp.catalog.ByID(args[0]); !ok {
			return fmt.Errorf("unknown prompt %q", args[0])
		}
		if theApp.favorites.Toggle(args[0]) {
			theApp.tracker.Track(analytics.FavoriteToggle(args[0], "add"))
			fmt.Printf("Favorited %q.\n", args[0])
		} else {
			theApp.tracker.Track(analytics.FavoriteToggle(args[0], "remove"))
			fmt.Printf("Removed %q from favorites.\n", args[0])
		}
		return nil
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp.favorites.Clear()
		fmt.Println("Favorites cleared.")
		return nil
	},
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	ids := theApp.favorites.All()
	if len(ids) == 0 {
		fmt.Println("No favorites yet. Add one with 'bizprompt favorites add <id>'.")
		return nil
	}
	table := ui.NewSimpleTable(fmt.Sprintf("Favorites (%d)", len(ids)), []string{"ID", "Title", "Category"})
	for _, id := range ids {
		if p, ok := theApp.catalog.ByID(id); ok {
			table.AddRow(p.ID, p.Title, string(p.Category))
		} else {
			// Favorited before the prompt was removed from the catalog.
			table.AddRow(id, "(no longer in catalog)", "")
		}
	}
	fmt.Print(table.View(ui.NewStyles(theApp.theme())))
	return nil
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recently viewed prompts",
	RunE:  runRecentList,
}

var recentListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recently viewed prompts",
	RunE:  runRecentList,
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the viewing history",
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp.recents.Clear()
		fmt.Println("Viewing history cleared.")
		return nil
	},
}

func runRecentList(cmd *cobra.Command, args []string) error {
	items := theApp.recents.Items()
	if len(items) == 0 {
		fmt.Println("No viewing history yet.")
		return nil
	}
	table := ui.NewSimpleTable(fmt.Sprintf("Recently viewed (%d)", len(items)), []string{"ID", "Title", "Viewed"})
	for _, item := range items {
		title := "(no longer in catalog)"
		if p, ok := theApp.catalog.ByID(item.ID); ok {
			title = p.Title
		}
		viewed := time.UnixMilli(item.ViewedAt).Format("2006-01-02 15:04")
		table.AddRow(item.ID, title, viewed)
	}
	fmt.Print(table.View(ui.NewStyles(theApp.theme())))
	return nil
}

var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Manage the premium license",
	RunE:  runLicenseStatus,
}

var licenseStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether premium prompts are unlocked",
	RunE:  runLicenseStatus,
}

var licenseUnlockCmd = &cobra.Command{
	Use:   "unlock [key]",
	Short: "Unlock premium prompts with a license key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok := theApp.gate.Unlock(args[0])
		theApp.tracker.Track(analytics.PremiumUnlockAttempt(ok))
		if !ok {
			return fmt.Errorf("invalid license key")
		}
		fmt.Println("Premium prompts unlocked.")
		return nil
	},
}

var licenseLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Re-lock premium prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		theApp.gate.Lock()
		fmt.Println("Premium prompts locked.")
		return nil
	},
}

func runLicenseStatus(cmd *cobra.Command, args []string) error {
	_, premium := theApp.catalog.CountByTier()
	if theApp.gate.Unlocked() {
		fmt.Printf("Premium unlocked: all %d prompts available.\n", theApp.catalog.Len())
	} else {
		fmt.Printf("Free tier: %d premium prompts locked.\n", premium)
	}
	return nil
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
	favoritesCmd.AddCommand(favoritesClearCmd)

	recentCmd.AddCommand(recentListCmd)
	recentCmd.AddCommand(recentClearCmd)

	licenseCmd.AddCommand(licenseStatusCmd)
	licenseCmd.AddCommand(licenseUnlockCmd)
	licenseCmd.AddCommand(licenseLockCmd)

	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(licenseCmd)
}
