package internal

import "strings"

// ResolvePath turns a user supplied path into an absolute path relative to
// currentDir. Absolute input is returned as is; lookup validates it.
// Relative input is folded segment by segment: ".." pops (never above the
// root), "." and empty segments are dropped.
func ResolvePath(currentDir, userPath string) string {
	if userPath == "" {
		return currentDir
	}
	if strings.HasPrefix(userPath, "/") {
		return userPath
	}

	stack := splitPath(currentDir)
	for _, seg := range strings.Split(userPath, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, seg)
		}
	}
	return "/" + strings.Join(stack, "/")
}

// splitPath returns the non-empty segments of p.
func splitPath(p string) []string {
	var segs []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

// JoinPath appends name to an absolute directory path.
func JoinPath(dir, name string) string {
	if dir == "/" || dir == "" {
		return "/" + name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}
