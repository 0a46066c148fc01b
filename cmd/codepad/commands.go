package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/browser"

	"codepad/internal/abbrev"
	"codepad/internal/assist"
	"codepad/internal/edit"
	"codepad/internal/project"
	"codepad/internal/render"
	"codepad/internal/store"
	"codepad/internal/suggest"
)

func (a *app) render(args []string) error {
	open := false
	if len(args) > 0 && args[0] == "--open" {
		open = true
		args = args[1:]
	}
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: codepad render [--open] <file> [out.html]")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	style := render.NewLayerStyle(a.cfg.Editor)
	h := render.NewHighlighter(a.cfg.Editor.Theme, a.cfg.Editor.TabSize)
	page, err := render.NewPage(filepath.Base(path), string(data), suggest.ProfileForPath(path), style, h)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render.WritePage(&buf, page); err != nil {
		return err
	}

	out := ""
	if len(args) == 2 {
		out = args[1]
	} else if open {
		f, err := os.CreateTemp("", "codepad-*.html")
		if err != nil {
			return fmt.Errorf("failed to create page file: %w", err)
		}
		out = f.Name()
		f.Close()
	}
	if out == "" {
		_, err := a.stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if open {
		return browser.OpenFile(out)
	}
	fmt.Fprintf(a.stdout, "Wrote %s\n", out)
	return nil
}

func (a *app) suggest(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: codepad suggest <file> <offset>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	offset, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", args[1], err)
	}

	text := string(data)
	offset = edit.State{Text: text, Sel: edit.Caret(offset)}.Normalize().Sel.Start

	root := filepath.Dir(args[0])
	files, err := project.Scan(root, project.DefaultLimit)
	if err != nil {
		return err
	}
	tables, closeStore := a.loadTables()
	defer closeStore()

	items := suggest.Suggest(suggest.Request{
		Text:        text,
		Offset:      offset,
		Profile:     suggest.ProfileForPath(args[0]),
		Tables:      tables,
		Files:       files,
		HTMLContext: project.HTMLContext(root, files),
	})
	for _, item := range items {
		value := strings.ReplaceAll(item.Value, "\n", `\n`)
		fmt.Fprintf(a.stdout, "%-12s %-24s %s\n", item.Kind, item.Label, value)
	}
	return nil
}

func (a *app) expand(args []string) error {
	input, err := a.readInput(args)
	if err != nil {
		return err
	}
	abbr := abbrev.Extract(strings.TrimSpace(input))
	expanded, ok := abbrev.Expand(abbr)
	if !ok {
		return fmt.Errorf("%q is not an abbreviation", strings.TrimSpace(input))
	}
	fmt.Fprintln(a.stdout, strings.ReplaceAll(expanded, abbrev.Marker, ""))
	return nil
}

func (a *app) format(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: codepad format <file>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	client, err := a.assistClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout())
	defer cancel()

	language := suggest.ProfileForPath(args[0]).Name
	fmt.Fprint(a.stdout, assist.FormatOrOriginal(ctx, client, string(data), language))
	return nil
}

func (a *app) tables(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: codepad tables list|show <table>|reset [table]|export <table> [file]|import <file>")
	}
	st, err := store.Open(a.cfg.Storage.Database)
	if err != nil {
		return err
	}
	defer st.Close()
	ctx := context.Background()

	switch args[0] {
	case "list":
		for _, name := range suggest.TableNames() {
			entries, err := st.Load(ctx, name)
			if err != nil {
				return err
			}
			custom, err := st.Customized(ctx, name)
			if err != nil {
				return err
			}
			state := "default"
			if custom {
				state = "customized"
			}
			fmt.Fprintf(a.stdout, "%-16s %4d entries  %s\n", name, len(entries), state)
		}
		return nil

	case "show":
		name, err := tableArg(args, 1)
		if err != nil {
			return err
		}
		entries, err := st.Load(ctx, name)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(a.stdout, "%-12s %-24s %s\n", e.Kind, e.Label, strings.ReplaceAll(e.Value, "\n", `\n`))
		}
		return nil

	case "reset":
		if len(args) == 1 {
			return st.ResetAll(ctx)
		}
		name, err := tableArg(args, 1)
		if err != nil {
			return err
		}
		return st.Reset(ctx, name)

	case "export":
		name, err := tableArg(args, 1)
		if err != nil {
			return err
		}
		if len(args) < 3 {
			return st.Export(ctx, name, a.stdout)
		}
		f, err := os.Create(args[2])
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", args[2], err)
		}
		defer f.Close()
		return st.Export(ctx, name, f)

	case "import":
		if len(args) != 2 {
			return errors.New("usage: codepad tables import <file>")
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[1], err)
		}
		defer f.Close()
		name, err := st.Import(ctx, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Imported %s\n", name)
		return nil
	}
	return fmt.Errorf("unknown tables command %q", args[0])
}

func tableArg(args []string, i int) (suggest.TableName, error) {
	if len(args) <= i {
		return "", errors.New("missing table name (one of html-tags, html-attributes, css-properties, js-keywords)")
	}
	return suggest.ParseTableName(args[i])
}
