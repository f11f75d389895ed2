package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/philipparndt/goroom/internal/registry"
	"github.com/philipparndt/goroom/pkg/loader"
	"github.com/philipparndt/goroom/pkg/scene"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [asset]",
	Short: "Print the node tree and interactive objects of a scene asset",
	Long:  "Load the asset without opening a window and list its nodes, which of them are interactive, and what picking each one does.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Asset = args[0]
	}
	if err := cfg.ValidateAsset(); err != nil {
		return err
	}
	path := cfg.Asset

	root, err := loadAsset(cmd.Context(), path)
	if err != nil {
		return err
	}

	reg := registry.New()
	if err := reg.Populate(root); err != nil {
		return err
	}
	registry.PrepareShadows(root)

	printInspection(cmd.OutOrStdout(), path, root, reg)
	return nil
}

// loadAsset loads path in the background so an interrupt abandons a slow load
func loadAsset(ctx context.Context, path string) (*scene.Node, error) {
	var (
		root    *scene.Node
		loadErr error
	)
	p := loader.LoadAsync(ctx, path,
		func(n *scene.Node, _ time.Duration) { root = n },
		func(err error) { loadErr = err })

	if !p.Wait() {
		return nil, ctx.Err()
	}
	return root, loadErr
}

func printInspection(w io.Writer, path string, root *scene.Node, reg *registry.Registry) {
	fmt.Fprintln(w, "Scene Information")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "File: %s\n\n", path)

	fmt.Fprintln(w, "Nodes:")
	printTree(w, root, 1)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Interactive objects (%d):\n", reg.Len())
	for _, e := range reg.Entries() {
		fmt.Fprintf(w, "  %-12s %s\n", e.Node.Name, describe(e.Behavior))
	}

	var missing []string
	for _, name := range registry.Names {
		if root.Find(name) == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(w, "\nNot found in asset: %s\n", strings.Join(missing, ", "))
	}
}

func printTree(w io.Writer, n *scene.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsMesh() {
		fmt.Fprintf(w, "%s%s [mesh, %d triangles, shadows=%v]\n", indent, n.Name, n.Mesh.TriangleCount(), n.CastShadow && n.ReceiveShadow)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, n.Name)
	}
	for _, c := range n.Children() {
		printTree(w, c, depth+1)
	}
}

func describe(b registry.Behavior) string {
	switch b := b.(type) {
	case registry.OpenLink:
		return fmt.Sprintf("%s %s", b.Kind(), b.URL)
	default:
		return b.Kind()
	}
}
