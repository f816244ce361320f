package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/campusone/registrar/internal/bootstrap"
)

var (
	// Global flags
	cfgFile  string
	dataDir  string
	seedData bool
)

var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "Registrar - student records for a single institution",
	Long: `Registrar tracks students, courses and enrollments, computes per-student
GPA and tuition, and saves everything to delimited text files between runs.

Running it without a subcommand opens the interactive menu.`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.Setup(bootstrap.Options{
			ConfigPath: cfgFile,
			DataDir:    dataDir,
			Seed:       seedData,
		})
		if err != nil {
			return err
		}
		return runMenu(app)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "config file path")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "override the data directory")
	rootCmd.Flags().BoolVar(&seedData, "seed", false, "seed sample data when starting with an empty registry")
}
