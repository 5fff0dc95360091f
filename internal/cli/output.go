package cli

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

// Output formatting helpers, styled with pterm, matching the executor
// package's own dry-run line styling.

func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Println(msg)
}

func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Printf("✓ %s\n", msg)
		return
	}
	fmt.Println(pterm.FgGreen.Sprintf("✓ %s", msg))
}

func printWarning(msg string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Printf("⚠ %s\n", msg)
		return
	}
	fmt.Println(pterm.FgYellow.Sprintf("⚠ %s", msg))
}

func printErrorMsg(msg string) {
	if globalNoColor {
		fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
		return
	}
	fmt.Fprintln(os.Stderr, pterm.FgRed.Sprintf("✗ %s", msg))
}

func printHeader(title string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Printf("\n=== %s ===\n", title)
		return
	}
	fmt.Println(pterm.FgMagenta.Sprintf("\n=== %s ===", title))
}
