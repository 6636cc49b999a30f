package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/imgextract"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	markup, svg, err := readInput(deps, &c.InputFlags)
	if err != nil {
		return err
	}

	session, err := newSession(deps, markup, svg)
	if err != nil {
		return err
	}

	images := session.Images()
	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if images == nil {
			images = []*imgextract.Image{}
		}
		return enc.Encode(images)
	}
	if len(images) == 0 {
		fmt.Fprintln(deps.Stdout, "No embedded images found.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, imgextract.FormatImages(images))
	return nil
}
