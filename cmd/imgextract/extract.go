package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/fwojciec/imgextract"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	markup, svg, err := readInput(deps, &c.InputFlags)
	if err != nil {
		return err
	}

	session, err := newSession(deps, markup, svg)
	if err != nil {
		return err
	}

	if err := c.applyEdits(session); err != nil {
		return err
	}

	out, err := session.Output()
	if err != nil {
		return err
	}

	images := session.Images()
	if len(images) == 0 {
		fmt.Fprintln(deps.Stderr, "No embedded images found.")
	}

	dir := c.Dir
	if dir == "" {
		dir = deps.Config.OutputDir
	}
	if dir != "" && len(images) > 0 {
		if err := saveImages(deps, dir, images); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved %d images to %s\n", len(images), dir)
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(out), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", c.Output, err)
		}
	} else {
		fmt.Fprintln(deps.Stdout, out)
	}

	if c.Copy {
		if err := deps.Clipboard.WriteText(out); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stderr, "Copied generated code.")
	}

	return nil
}

// applyEdits applies --name and --lazy in ascending ID order.
func (c *ExtractCmd) applyEdits(session *imgextract.Session) error {
	ids := make([]int, 0, len(c.Names)+len(c.Lazy))
	for id := range c.Names {
		ids = append(ids, id)
	}
	for id := range c.Lazy {
		if _, ok := c.Names[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	for _, id := range ids {
		var upd imgextract.ImageUpdate
		if name, ok := c.Names[id]; ok {
			upd.Name = &name
		}
		if lazy, ok := c.Lazy[id]; ok {
			upd.LazyLoad = &lazy
		}
		if err := session.Update(id, upd); err != nil {
			return err
		}
	}
	return nil
}

// saveImages writes every image to dir. Either all images are saved or
// none are.
func saveImages(deps *Dependencies, dir string, images []*imgextract.Image) (err error) {
	store := deps.NewStore(dir)
	defer func() {
		if err != nil {
			_ = store.Abort()
		}
	}()

	for _, img := range images {
		if err := store.Save(deps.Ctx, img); err != nil {
			return err
		}
	}
	return store.Commit()
}
