package internal

import (
	"embed"
	"io/fs"
)

var (
	//go:embed defaults/config.toml
	defaultConfigTOML []byte

	//go:embed defaults/manifest.yaml
	defaultManifestYAML []byte

	//go:embed defaults/posts
	defaultPosts embed.FS
)

// DefaultConfig returns the built-in config.toml document
func DefaultConfig() string {
	return string(defaultConfigTOML)
}

// DefaultContent returns the built-in article tree rooted so that manifest
// paths such as "posts/about.md" resolve.
func DefaultContent() fs.FS {
	sub, err := fs.Sub(defaultPosts, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}
