package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardpress/pkg/cache"
	"github.com/matzehuels/cardpress/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rasterized card cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached card rasters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.config().Cache.Backend == config.CacheNone {
				printInfo("Cache is disabled")
				return nil
			}
			store, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer store.Close()

			entries := -1
			if fc, ok := store.(*cache.FileCache); ok {
				if n, _, err := fc.Stats(); err == nil {
					entries = n
				}
			}

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache backend %q cannot be cleared", c.config().Cache.Backend)
			}
			if err := clearer.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if entries >= 0 {
				printSuccess("Cleared %d cached entries", entries)
			} else {
				printSuccess("Cleared cache")
			}
			printDetail("Location: %s", c.cacheLocation())
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache backend and its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := c.config().Cache
			printKeyValue("Backend", cc.Backend)
			printKeyValue("Location", c.cacheLocation())
			printKeyValue("TTL", cc.TTL.String())

			if cc.Backend != config.CacheFile {
				return nil
			}
			store, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()
			if fc, ok := store.(*cache.FileCache); ok {
				n, size, err := fc.Stats()
				if err != nil {
					return fmt.Errorf("read cache: %w", err)
				}
				printKeyValue("Entries", fmt.Sprint(n))
				printKeyValue("Size", formatBytes(size))
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory or Redis URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes where the configured cache lives.
func (c *CLI) cacheLocation() string {
	cc := c.config().Cache
	switch cc.Backend {
	case config.CacheRedis:
		return cc.RedisURL + " (prefix " + fmt.Sprintf("%q", cc.Prefix) + ")"
	case config.CacheNone:
		return "disabled"
	}
	if cc.Dir != "" {
		return cc.Dir
	}
	dir, err := cacheDir()
	if err != nil {
		return "unavailable"
	}
	return dir
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
