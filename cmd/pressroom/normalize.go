package main

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eringen/pressroom/content"
	"github.com/eringen/pressroom/frontmatter"
)

func newNormalizeCmd(c *cli) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite every header into the canonical form",
		Long: `normalize resolves every content file and writes its header back in a fixed
key order with quoted strings, RFC 3339 dates and a topics list. Files that
fail to parse are reported and left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := []string{c.cfg.PostsDir}
			if c.cfg.ContentDir != "" && c.cfg.ContentDir != c.cfg.PostsDir {
				dirs = append(dirs, c.cfg.ContentDir)
			}
			var changed int
			for _, dir := range dirs {
				n, err := normalizeDir(dir, c.cfg.DefaultImage, dryRun, cmd.OutOrStdout(), c.logger)
				if err != nil {
					return err
				}
				changed += n
			}
			verb := "rewrote"
			if dryRun {
				verb = "would rewrite"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d file(s)\n", verb, changed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report files that would change without writing")
	return cmd
}

// normalizeDir rewrites the headers of every content file under dir and
// returns how many files changed.
func normalizeDir(dir, defaultImage string, dryRun bool, out io.Writer, logger *log.Logger) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		logger.Warn("skip content directory", "dir", dir, "error", err)
		return 0, nil
	}
	root := content.DirRoot(dir)
	loc := content.NewLocator([]content.Root{root},
		content.WithLogger(logger),
		content.WithDefaultImage(defaultImage),
	)

	changed := 0
	err := fs.WalkDir(os.DirFS(dir), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !isContent(p) {
			return nil
		}

		file := filepath.Join(dir, filepath.FromSlash(p))
		raw, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		if _, _, err := frontmatter.Parse(raw); err != nil {
			logger.Error("not normalizing", "path", file, "error", err)
			return nil
		}
		it, ok := loc.Load(root, p)
		if !ok || it.Degraded {
			return nil
		}

		next, err := frontmatter.Marshal(content.HeaderFields(it, defaultImage), []byte(it.Body))
		if err != nil {
			return fmt.Errorf("normalize %s: %w", file, err)
		}
		if bytes.Equal(raw, next) {
			return nil
		}
		changed++
		fmt.Fprintln(out, file)
		if dryRun {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return os.WriteFile(file, next, info.Mode().Perm())
	})
	if err != nil {
		return changed, fmt.Errorf("normalize %s: %w", dir, err)
	}
	return changed, nil
}

func isContent(p string) bool {
	ext := path.Ext(p)
	for _, e := range content.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
