package internal

import (
	"sort"
	"strings"
)

// ConfigFileName is the settings document exposed at the root of the tree
const ConfigFileName = "config.toml"

// NodeKind tells directories and files apart
type NodeKind int

const (
	DirNode NodeKind = iota
	FileNode
)

// Node is one entry of the virtual filesystem. The tree is immutable once
// built; handlers only ever read it.
type Node struct {
	Name     string
	Kind     NodeKind
	Icon     string
	Title    string
	Date     string // YYYY-MM-DD
	Category string
	Source   string // locator handed to the content source
	URL      string // external location, if any
	Children []*Node
}

// IsDir reports whether n is a directory
func (n *Node) IsDir() bool {
	return n.Kind == DirNode
}

// IsConfig reports whether n is the synthetic settings document
func (n *Node) IsConfig() bool {
	return n.Kind == FileNode && n.Name == ConfigFileName && n.Source == ""
}

// DisplayIcon returns the node icon, falling back to a generic one
func (n *Node) DisplayIcon() string {
	switch {
	case n.Icon != "":
		return n.Icon
	case n.IsDir():
		return "📁"
	case strings.HasSuffix(n.Name, ".md"):
		return "📝"
	default:
		return "📄"
	}
}

// FileSystem is the read-only document tree
type FileSystem struct {
	root   *Node
	config *Node
}

// NewFileSystem builds the tree from a manifest. If the manifest has no
// config.toml at the root, a synthetic entry is added for it.
func NewFileSystem(m *Manifest) (*FileSystem, error) {
	if err := validateEntries("/", m.Posts); err != nil {
		return nil, &ManifestError{Err: err}
	}
	root := &Node{Name: "/", Kind: DirNode, Children: buildNodes(m.Posts, "")}

	fsys := &FileSystem{root: root}
	for _, child := range root.Children {
		if child.Name == ConfigFileName {
			fsys.config = child
		}
	}
	if fsys.config == nil {
		fsys.config = &Node{
			Name:     ConfigFileName,
			Kind:     FileNode,
			Icon:     "⚙️",
			Title:    "Settings",
			Category: "config",
		}
	}
	return fsys, nil
}

func buildNodes(entries []ManifestEntry, parent string) []*Node {
	nodes := make([]*Node, 0, len(entries))
	for _, e := range entries {
		n := &Node{
			Name:     e.Name,
			Icon:     e.Icon,
			Title:    e.Title,
			Date:     e.Date,
			Category: e.Category,
			Source:   e.Path,
			URL:      e.URL,
		}
		if e.Type == entryTypeDir {
			n.Kind = DirNode
			n.Children = buildNodes(e.Content, e.Name)
		} else {
			n.Kind = FileNode
			if n.Title == "" {
				n.Title = strings.TrimSuffix(e.Name, ".md")
			}
			if n.Category == "" {
				n.Category = parent
				if n.Category == "" {
					n.Category = "root"
				}
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// Root returns the root directory node
func (fsys *FileSystem) Root() *Node {
	return fsys.root
}

// Lookup returns the node at an absolute path
func (fsys *FileSystem) Lookup(p string) (*Node, error) {
	if !strings.HasPrefix(p, "/") {
		return nil, &NotFoundError{What: "Path", Name: p}
	}
	segs := splitPath(p)
	if len(segs) == 1 && segs[0] == ConfigFileName {
		return fsys.config, nil
	}

	node := fsys.root
	for _, seg := range segs {
		if !node.IsDir() {
			return nil, &NotFoundError{What: "Path", Name: p}
		}
		next := childNamed(node, seg)
		if next == nil {
			return nil, &NotFoundError{What: "Path", Name: p}
		}
		node = next
	}
	return node, nil
}

// ListChildren returns the entries of a directory in manifest order. The
// root listing includes config.toml.
func (fsys *FileSystem) ListChildren(p string) ([]*Node, error) {
	node, err := fsys.Lookup(p)
	if err != nil {
		return nil, &NotFoundError{What: "Directory", Name: p}
	}
	if !node.IsDir() {
		return nil, &NotFoundError{What: "Directory", Name: p}
	}

	children := make([]*Node, 0, len(node.Children)+1)
	children = append(children, node.Children...)
	if node == fsys.root && childNamed(node, ConfigFileName) == nil {
		children = append(children, fsys.config)
	}
	return children, nil
}

// IsDir reports whether p names a directory
func (fsys *FileSystem) IsDir(p string) bool {
	node, err := fsys.Lookup(p)
	return err == nil && node.IsDir()
}

// Exists reports whether p names any node
func (fsys *FileSystem) Exists(p string) bool {
	_, err := fsys.Lookup(p)
	return err == nil
}

// Walk visits every node below the root depth first in manifest order. The
// synthetic config entry is not visited.
func (fsys *FileSystem) Walk(fn func(p string, n *Node, depth int) error) error {
	return walkNodes("/", fsys.root.Children, 0, fn)
}

func walkNodes(dir string, nodes []*Node, depth int, fn func(string, *Node, int) error) error {
	for _, n := range nodes {
		p := JoinPath(dir, n.Name)
		if err := fn(p, n, depth); err != nil {
			return err
		}
		if n.IsDir() {
			if err := walkNodes(p, n.Children, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindFile looks a file up by name: first in cwd, then anywhere in the tree.
// It returns the node and its absolute path.
func (fsys *FileSystem) FindFile(cwd, name string) (*Node, string, bool) {
	if strings.Contains(name, "/") {
		p := ResolvePath(cwd, name)
		n, err := fsys.Lookup(p)
		if err != nil || n.IsDir() {
			return nil, "", false
		}
		return n, p, true
	}

	if cwd == "/" && name == ConfigFileName {
		return fsys.config, "/" + ConfigFileName, true
	}
	if dir, err := fsys.Lookup(cwd); err == nil && dir.IsDir() {
		if n := childNamed(dir, name); n != nil && !n.IsDir() {
			return n, JoinPath(cwd, name), true
		}
	}

	var (
		found     *Node
		foundPath string
	)
	_ = fsys.Walk(func(p string, n *Node, _ int) error {
		if found == nil && !n.IsDir() && n.Name == name {
			found, foundPath = n, p
		}
		return nil
	})
	return found, foundPath, found != nil
}

// Names returns the sorted names of entries in dir that match kind
func (fsys *FileSystem) Names(dir string, kind ArgKind) []string {
	children, err := fsys.ListChildren(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, c := range children {
		if kind.Accepts(c) {
			names = append(names, c.Name)
		}
	}
	sort.Strings(names)
	return names
}

func childNamed(dir *Node, name string) *Node {
	for _, c := range dir.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
