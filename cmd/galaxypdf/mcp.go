package main

import (
	"github.com/spf13/cobra"

	"github.com/lvillar/galaxypdf/content"
	mcpserver "github.com/lvillar/galaxypdf/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the merge, split and page count tools and the site content to AI assistants.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := loadConfig()
		if err != nil {
			return err
		}
		cat, err := content.Load()
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		// Stdout carries the protocol; logrus writes to stderr.
		log.Info("galaxypdf MCP server started on stdio")
		return mcpserver.NewServer(cat).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
