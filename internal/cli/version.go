package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show detailed version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("carmsdw %s\n", Version)
			fmt.Printf("  build date: %s\n", BuildDate)
			fmt.Printf("  git commit: %s\n", GitCommit)
			fmt.Printf("  go version: %s\n", runtime.Version())
			fmt.Printf("  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
