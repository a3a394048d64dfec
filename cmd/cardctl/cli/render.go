package cli

import (
	"context"
	"feedcard/config"
	"feedcard/di"
	"feedcard/domain"
	"feedcard/internal/output"
	"feedcard/usecase/card_layout_usecase"
	"feedcard/utils/logger"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type renderOptions struct {
	file              string
	wait              time.Duration
	strict            bool
	allowPrivateHosts bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Build card layouts and print them as trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "JSON array of cards, - for stdin")
	cmd.Flags().DurationVar(&opts.wait, "wait", 3*time.Second, "how long to wait for images")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "panic on unknown card types")
	cmd.Flags().BoolVar(&opts.allowPrivateHosts, "allow-private-hosts", false, "allow image hosts on private networks")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	p, err := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	data, err := readCardsFile(opts.file)
	if err != nil {
		return fmt.Errorf("read cards: %w", err)
	}
	cards, err := domain.DecodeCards(data)
	if err != nil {
		return err
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Render.StrictContracts = opts.strict
	cfg.Image.AllowPrivateHosts = cfg.Image.AllowPrivateHosts || opts.allowPrivateHosts

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	container, err := di.NewApplicationComponents(ctx, cfg, logger.Logger)
	if err != nil {
		return err
	}
	defer container.Close()

	built := container.Composer.ComposeFeed(ctx, cards)
	defer func() {
		for _, b := range built {
			b.Release()
		}
	}()

	waitCtx, cancel := context.WithTimeout(ctx, opts.wait)
	defer cancel()
	if err := card_layout_usecase.WaitAll(waitCtx, built); err != nil {
		p.Warning("images still loading after %s", opts.wait)
	}

	for _, b := range built {
		printTree(p, b.Tree)
	}
	p.Success("%d card(s) rendered", len(built))
	return nil
}

func printTree(p *output.Printer, tree *domain.LayoutTree) {
	p.Heading("#%d %s", tree.Position, tree.CardType)
	if tree.IsEmpty() {
		p.Line(1, true, "(not rendered)")
		return
	}
	printNode(p, tree, tree.Root, 1)
}

func printNode(p *output.Printer, tree *domain.LayoutTree, node *domain.LayoutNode, depth int) {
	switch node.Kind {
	case domain.NodeContainer:
		label := fmt.Sprintf("%s (%s)", node.Role, node.Orientation)
		if node.EffectiveHeight > 0 {
			label += fmt.Sprintf(" height=%d", node.EffectiveHeight)
		}
		p.Line(depth, true, "%s", label)
		for _, child := range node.Children {
			printNode(p, tree, child, depth+1)
		}
	case domain.NodeHeading:
		p.Line(depth, false, "# %s", node.Label)
	case domain.NodeBadge:
		p.Line(depth, false, "[%s]", node.Label)
	case domain.NodeSlot:
		p.Line(depth, false, "%s: %s", node.Slot, slotValue(tree, node))
	}
}

func slotValue(tree *domain.LayoutTree, node *domain.LayoutNode) string {
	if node.Cell < 0 || node.Cell >= len(tree.Cells) {
		return "(empty)"
	}
	cell := tree.Cells[node.Cell]
	switch node.Slot {
	case domain.SlotImage:
		image := cell.Image()
		if image.Bitmap != nil {
			return fmt.Sprintf("%s %dx%d", image.State, image.Bitmap.Width, image.Bitmap.Height)
		}
		return string(image.State)
	case domain.SlotLogo:
		return cell.Image().Asset
	}
	if text, ok := cell.Text(node.Slot); ok {
		return text
	}
	return "(empty)"
}
