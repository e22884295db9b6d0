package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Флаги командной строки. Заданный флаг имеет приоритет над окружением и файлом.
var (
	configPath  string
	host        string
	port        int
	notesDir    string
	drawingsDir string
	logLevel    string
)

// rootCmd запускает HTTP сервис заметок и рисунков.
var rootCmd = &cobra.Command{
	Use:   "urlnotes",
	Short: "Local notes and Excalidraw drawings keyed by URL hash",
	Long: `urlnotes stores Markdown notes and Excalidraw drawings on the local
filesystem and serves them over a small HTTP API for the browser extension.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd)
	},
}

// Execute запускает корневую команду и завершает процесс с кодом 1 при ошибке.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVar(&host, "host", "", "Address to listen on")
	flags.IntVarP(&port, "port", "p", 0, "Port to listen on")
	flags.StringVar(&notesDir, "notes-dir", "", "Directory for note files")
	flags.StringVar(&drawingsDir, "drawings-dir", "", "Directory for drawing files")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}
