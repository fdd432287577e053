package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iksnae/termblog/internal"
)

func ls(ctx *internal.ExecContext, args []string) error {
	target := ctx.Arg(0, "")
	children, err := ctx.List(target)
	if err != nil {
		if target == "" {
			target = ctx.Cwd()
		}
		return &internal.NotFoundError{What: "Directory", Name: target}
	}
	ctx.Dir(listing(children))
	return nil
}

// listing orders a directory: subdirectories in manifest order, then
// markdown files newest first, then other files by name
func listing(children []*internal.Node) []internal.DirEntry {
	var dirs, docs, others []*internal.Node
	for _, c := range children {
		switch {
		case c.IsDir():
			dirs = append(dirs, c)
		case strings.HasSuffix(c.Name, ".md"):
			docs = append(docs, c)
		default:
			others = append(others, c)
		}
	}
	// ISO dates compare as strings; undated files sort last
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Date > docs[j].Date })
	sort.SliceStable(others, func(i, j int) bool { return others[i].Name < others[j].Name })

	entries := make([]internal.DirEntry, 0, len(children))
	for _, group := range [][]*internal.Node{dirs, docs, others} {
		for _, n := range group {
			entries = append(entries, internal.DirEntry{
				Name:  n.Name,
				Icon:  n.DisplayIcon(),
				IsDir: n.IsDir(),
				Title: n.Title,
				Date:  n.Date,
			})
		}
	}
	return entries
}

func cd(ctx *internal.ExecContext, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return ctx.SetCwd(args[0])
}

func pwd(ctx *internal.ExecContext, args []string) error {
	ctx.Print(ctx.Cwd())
	return nil
}

func cat(ctx *internal.ExecContext, args []string) error {
	if len(args) == 0 {
		return &internal.UsageError{Usage: "cat <file.md>"}
	}
	name := args[0]

	node, _, ok := ctx.FindFile(name)
	if !ok || node.IsConfig() {
		// config.toml and stored pseudo files print as plain text
		body, err := ctx.ReadFile(name)
		if err != nil {
			return fileNotFound(name, err)
		}
		ctx.Print(body)
		return nil
	}

	body, err := ctx.ReadFile(name)
	if err != nil {
		return fileNotFound(name, err)
	}
	ctx.Markdown(internal.Document{
		Title:    node.Title,
		Date:     node.Date,
		Category: node.Category,
		Body:     body,
	})
	return nil
}

func fileNotFound(name string, err error) error {
	if !errors.Is(err, internal.ErrNotFound) {
		internal.LogDebug("Reading %s: %v", name, err)
	}
	return &internal.NotFoundError{What: "File", Name: name}
}

func tree(ctx *internal.ExecContext, args []string) error {
	lines := []string{"📁 ."}
	lines = append(lines, treeLines(ctx.FileSystem().Root().Children, "")...)
	ctx.Tree(strings.Join(lines, "\n"))
	return nil
}

func treeLines(nodes []*internal.Node, indent string) []string {
	var lines []string
	for i, n := range nodes {
		branch, next := "├── ", indent+"│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", indent+"    "
		}
		lines = append(lines, indent+branch+n.DisplayIcon()+" "+n.Name)
		if n.IsDir() {
			lines = append(lines, treeLines(n.Children, next)...)
		}
	}
	return lines
}

func find(ctx *internal.ExecContext, args []string) error {
	term := strings.Join(args, " ")
	if term == "" {
		return &internal.UsageError{Usage: "find <term>"}
	}
	needle := strings.ToLower(term)

	var results []string
	_ = ctx.FileSystem().Walk(func(p string, n *internal.Node, _ int) error {
		if !n.IsDir() && strings.Contains(strings.ToLower(n.Name), needle) {
			results = append(results, fmt.Sprintf("%s %s (%s)", n.DisplayIcon(), p, n.Category))
		}
		return nil
	})

	if len(results) == 0 {
		ctx.Info(fmt.Sprintf("No articles matching %q", term))
		return nil
	}
	header := fmt.Sprintf("Found %d articles matching %q:", len(results), term)
	ctx.Info(strings.Join(append([]string{header, ""}, results...), "\n"))
	return nil
}

func wget(ctx *internal.ExecContext, args []string) error {
	if len(args) == 0 {
		return &internal.UsageError{Usage: "wget <file>"}
	}
	name := args[0]
	dir := ctx.DownloadDir()
	if dir == "" {
		return fmt.Errorf("downloads are disabled")
	}

	source := "settings"
	if !(name == internal.ConfigFileName && ctx.Cwd() == "/") {
		node, _, ok := ctx.FindFile(name)
		if !ok {
			return &internal.NotFoundError{What: "File", Name: name}
		}
		source = node.Source
		if node.URL != "" {
			source = node.URL
		}
	}

	ctx.Progress(0, name)
	body, err := ctx.ReadFile(name)
	if err != nil {
		return fileNotFound(name, err)
	}
	ctx.Progress(50, name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	dest := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(dest, []byte(body), 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	ctx.Progress(100, name)

	ctx.Success("Downloaded: " + name)
	ctx.Info(fmt.Sprintf("Saved %s to %s", source, dest))
	return nil
}

func echo(ctx *internal.ExecContext, args []string) error {
	if len(args) == 1 {
		if body, err := ctx.ReadFile(args[0]); err == nil {
			ctx.Print(body)
			return nil
		}
	}
	ctx.Print(strings.Join(args, " "))
	return nil
}
