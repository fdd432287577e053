package commands

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/iksnae/termblog/internal"
)

// apply writes partial to the settings and reports the outcome
func apply(ctx *internal.ExecContext, what string, partial map[string]interface{}, done string) {
	if !ctx.UpdateSettings(partial) {
		ctx.Error(fmt.Sprintf("Failed to update %s, please retry.", what))
		return
	}
	ctx.Success(done)
	ctx.Redraw()
}

func size(ctx *internal.ExecContext, args []string) error {
	usage := &internal.UsageError{Usage: "size <1-26|default>"}
	arg := ctx.Arg(0, "")
	if arg == "default" {
		apply(ctx, "font size", map[string]interface{}{
			"ui": map[string]interface{}{"fontSize": defaultFontSize},
		}, "Font size reset to default (18px)")
		return nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < minFontSize || n > maxFontSize {
		return usage
	}
	apply(ctx, "font size", map[string]interface{}{
		"ui": map[string]interface{}{"fontSize": strconv.Itoa(n)},
	}, fmt.Sprintf("Font size set to %dpx", n))
	return nil
}

func font(ctx *internal.ExecContext, args []string) error {
	available := strings.Join(Fonts, ", ") + ", default"
	if len(args) == 0 {
		ctx.Info(fmt.Sprintf("Current font: %s\nAvailable fonts: %s", ctx.Settings().FontFamily, available))
		return nil
	}

	name := strings.Join(args, " ")
	if name == "default" {
		apply(ctx, "font", map[string]interface{}{
			"ui": map[string]interface{}{"fontFamily": defaultFont},
		}, fmt.Sprintf("Font reset to default (%s)", defaultFont))
		return nil
	}
	for _, f := range Fonts {
		if f == name {
			apply(ctx, "font", map[string]interface{}{
				"ui": map[string]interface{}{"fontFamily": name},
			}, "Font set to "+name)
			return nil
		}
	}
	ctx.Error(fmt.Sprintf("Font not found: %s\nAvailable fonts: %s", name, available))
	return nil
}

func background(ctx *internal.ExecContext, args []string) error {
	usage := "background <0-1> | background opacity <0-1> | background image <path>"

	switch {
	case len(args) == 0:
		v := ctx.Settings()
		ctx.Info(backgroundInfo(v))
		return nil

	case len(args) == 1:
		return setOpacity(ctx, args[0], usage)

	case args[0] == "opacity":
		return setOpacity(ctx, args[1], "background opacity <0-1>")

	case args[0] == "image":
		image := args[1]
		if u, err := url.Parse(image); (err != nil || u.Scheme == "" || u.Host == "") && !strings.HasPrefix(image, "/") {
			return &internal.UsageError{Msg: "Local image paths must start with /", Usage: "background image <path>"}
		}
		if !ctx.UpdateSettings(map[string]interface{}{
			"background": map[string]interface{}{"image": image},
		}) {
			ctx.Error("Failed to update background image, please retry.")
			return nil
		}
		ctx.Success("Background image set to " + image)
		ctx.Info(backgroundInfo(ctx.Settings()))
		return nil
	}
	return &internal.UsageError{Usage: usage}
}

func setOpacity(ctx *internal.ExecContext, arg, usage string) error {
	f, err := strconv.ParseFloat(arg, 64)
	if err != nil || f < 0 || f > 1 {
		return &internal.UsageError{Usage: usage}
	}
	apply(ctx, "background opacity", map[string]interface{}{
		"background": map[string]interface{}{"opacity": strconv.FormatFloat(f, 'f', -1, 64)},
	}, "Background opacity set to "+arg)
	return nil
}

func backgroundInfo(v internal.SettingsView) string {
	image := v.BackgroundImage
	if image == "" {
		image = "none"
	}
	return fmt.Sprintf("Background:\n  image: %s\n  opacity: %s", image, strconv.FormatFloat(v.BackgroundOpacity, 'f', -1, 64))
}

func theme(ctx *internal.ExecContext, args []string) error {
	v := ctx.Settings()

	if ctx.Arg(0, "") == "read" {
		available := v.ReadThemes
		if len(args) < 2 {
			ctx.Info(fmt.Sprintf("Current reader theme: %s\nAvailable reader themes: %s", v.ReadTheme, strings.Join(available, ", ")))
			return nil
		}
		name := args[1]
		if !contains(available, name) {
			ctx.Error(fmt.Sprintf("Reader theme not found: %s\nAvailable themes: %s", name, strings.Join(available, ", ")))
			return nil
		}
		apply(ctx, "reader theme", map[string]interface{}{
			"read_theme": map[string]interface{}{"current": name},
		}, "Reader theme set to "+name)
		return nil
	}

	switch len(args) {
	case 0:
		ctx.Info(fmt.Sprintf("Current theme: %s\nAvailable themes: %s", v.Theme, strings.Join(v.Themes, ", ")))
	case 1:
		name := args[0]
		if !contains(v.Themes, name) {
			ctx.Error(fmt.Sprintf("Theme not found: %s\nAvailable themes: %s", name, strings.Join(v.Themes, ", ")))
			return nil
		}
		apply(ctx, "theme", map[string]interface{}{
			"theme": map[string]interface{}{"current": name},
		}, "Theme set to "+name)
	default:
		return &internal.UsageError{Usage: "theme [name] | theme read [name]"}
	}
	return nil
}

func testConfig(ctx *internal.ExecContext, args []string) error {
	v := ctx.Settings()
	image := v.BackgroundImage
	if image == "" {
		image = "none"
	}
	ctx.Info(fmt.Sprintf(`Current settings:
  user: %s
  font: %s, %dpx
  background:
    image: %s
    opacity: %s
  theme: %s
  available themes: %s
  reader theme: %s`,
		v.User, v.FontFamily, v.FontSize, image,
		strconv.FormatFloat(v.BackgroundOpacity, 'f', -1, 64),
		v.Theme, strings.Join(v.Themes, ", "), v.ReadTheme))
	return nil
}

func clearConfig(ctx *internal.ExecContext, args []string) error {
	answer, err := ctx.Prompt("Clear all settings and history? (y/N)")
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		ctx.Info("Cancelled.")
		return nil
	}

	if err := ctx.ClearHistory(); err != nil {
		return err
	}
	if err := ctx.ResetSettings(); err != nil {
		return err
	}
	ctx.ClearOthers()
	ctx.Success("All settings and history cleared!")
	ctx.Info("Settings have been reset to defaults.")
	return nil
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}
