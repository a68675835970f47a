package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ochronus/gopremiumize/internal/app"
	"github.com/ochronus/gopremiumize/internal/config"
	"github.com/ochronus/gopremiumize/internal/services/premiumize"
	"github.com/ochronus/gopremiumize/internal/utils"
	"github.com/spf13/cobra"
)

type cli struct {
	configPath string
	out        io.Writer
	// containerOpts lets tests inject dependencies.
	containerOpts []app.Option
}

func newRootCmd(out io.Writer, opts ...app.Option) *cobra.Command {
	c := &cli{out: out, containerOpts: opts}

	// Get default config path
	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfigPath = "./config.toml"
	}

	rootCmd := &cobra.Command{
		Use:           "gopremiumize",
		Short:         "Premiumize.me command line client",
		Long:          "Command line client for the Premiumize.me cloud storage and transfer API. Results are printed as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", defaultConfigPath, "Path to config file")

	rootCmd.AddCommand(
		c.accountCmd(),
		c.foldersCmd(),
		c.transfersCmd(),
		c.cacheCmd(),
		c.servicesCmd(),
		c.generateConfigCmd(),
		c.versionCmd(),
	)
	return rootCmd
}

// client loads the configuration and builds the API client.
func (c *cli) client(cmd *cobra.Command) (premiumize.ClientAPI, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	opts := append([]app.Option{app.WithAccountValidation(false)}, c.containerOpts...)
	container, err := app.NewContainer(cmd.Context(), cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build container: %w", err)
	}
	return container.Client, nil
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// run wraps a client call into a cobra RunE that prints the result.
func (c *cli) run(fn func(cmd *cobra.Command, client premiumize.ClientAPI, args []string) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := c.client(cmd)
		if err != nil {
			return err
		}
		result, err := fn(cmd, client, args)
		if err != nil {
			return err
		}
		return c.print(result)
	}
}

func (c *cli) accountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show account information",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, _ []string) (any, error) {
			return client.AccountInfo(cmd.Context())
		}),
	}
}

func (c *cli) foldersCmd() *cobra.Command {
	foldersCmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage cloud folders",
	}

	var breadcrumbs bool
	listCmd := &cobra.Command{
		Use:   "list [folder-id]",
		Short: "List a folder, the root folder by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, args []string) (any, error) {
			req := premiumize.ListFolderRequest{}
			if len(args) == 1 {
				req.ID = &args[0]
			}
			if cmd.Flags().Changed("breadcrumbs") {
				req.IncludeBreadcrumbs = &breadcrumbs
			}
			return client.ListFolder(cmd.Context(), req)
		}),
	}
	listCmd.Flags().BoolVar(&breadcrumbs, "breadcrumbs", false, "Include breadcrumbs")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the cloud storage",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, args []string) (any, error) {
			return client.SearchFolders(cmd.Context(), args[0])
		}),
	}

	var parent string
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, args []string) (any, error) {
			req := premiumize.CreateFolderRequest{Name: args[0]}
			if parent != "" {
				req.ParentID = &parent
			}
			return client.CreateFolder(cmd.Context(), req)
		}),
	}
	createCmd.Flags().StringVar(&parent, "parent", "", "Parent folder id")

	deleteCmd := &cobra.Command{
		Use:   "delete <folder-id>",
		Short: "Delete a folder",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, args []string) (any, error) {
			return client.DeleteFolder(cmd.Context(), args[0])
		}),
	}

	foldersCmd.AddCommand(listCmd, searchCmd, createCmd, deleteCmd)
	return foldersCmd
}

func (c *cli) transfersCmd() *cobra.Command {
	transfersCmd := &cobra.Command{
		Use:   "transfers",
		Short: "Manage transfers",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transfers",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, _ []string) (any, error) {
			return client.ListTransfers(cmd.Context())
		}),
	}

	var folder string
	addCmd := &cobra.Command{
		Use:   "add <src>",
		Short: "Add a transfer from a URL or magnet link",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, args []string) (any, error) {
			req := premiumize.CreateTransferRequest{Src: args[0]}
			if folder != "" {
				req.FolderID = &folder
			}
			return client.CreateTransfer(cmd.Context(), req)
		}),
	}
	addCmd.Flags().StringVar(&folder, "folder", "", "Target folder id")

	deleteCmd := &cobra.Command{
		Use:   "delete <transfer-id>",
		Short: "Delete a transfer",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, args []string) (any, error) {
			return client.DeleteTransfer(cmd.Context(), args[0])
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear finished transfers",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, _ []string) (any, error) {
			return client.ClearFinishedTransfers(cmd.Context())
		}),
	}

	transfersCmd.AddCommand(listCmd, addCmd, deleteCmd, clearCmd)
	return transfersCmd
}

func (c *cli) cacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Query the cache",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "check <hash-or-link>...",
		Short: "Check whether items are cached",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, args []string) (any, error) {
			return client.CheckCache(cmd.Context(), args)
		}),
	})
	return cacheCmd
}

func (c *cli) servicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List supported hosters",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, client premiumize.ClientAPI, _ []string) (any, error) {
			return client.ListServices(cmd.Context())
		}),
	}
}

func (c *cli) generateConfigCmd() *cobra.Command {
	var apiKey string
	cmd := &cobra.Command{
		Use:   "generate-config",
		Short: "Generate config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return utils.GenerateConfig(c.out, c.configPath, apiKey)
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Premiumize API key")
	_ = cmd.MarkFlagRequired("api-key")
	return cmd
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.out, "gopremiumize version %s\n", version)
		},
	}
}
