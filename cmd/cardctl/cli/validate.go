package cli

import (
	"feedcard/domain"
	"feedcard/internal/output"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check card snapshots against their templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			data, err := readCardsFile(file)
			if err != nil {
				return fmt.Errorf("read cards: %w", err)
			}
			cards, err := domain.DecodeCards(data)
			if err != nil {
				return err
			}

			table := output.NewTable(p.Out(), []string{"position", "type", "items", "arity", "status"})
			short := 0
			for _, card := range cards {
				arity, _ := card.Type.Arity()
				status := "ok"
				switch {
				case len(card.Items) < arity:
					status = "short"
					short++
				case len(card.Items) > arity:
					status = "extra items ignored"
				}
				table.AddRow([]string{
					strconv.Itoa(card.Position),
					card.Type.String(),
					strconv.Itoa(len(card.Items)),
					strconv.Itoa(arity),
					status,
				})
			}
			if err := table.Render(); err != nil {
				return err
			}

			if short > 0 {
				p.Warning("%d card(s) will render with empty cells", short)
			}
			p.Success("%d card(s) decoded", len(cards))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON array of cards, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
