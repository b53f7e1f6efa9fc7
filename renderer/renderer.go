// Package renderer turns engine reports into markdown for the terminal.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/yunzhu/licai"
)

// OverviewMarkdown renders the aggregated valuation report.
func OverviewMarkdown(o *licai.Overview) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Holdings on %s", o.Date))
	doc.PlainText(fmt.Sprintf("Total value: %s — total earnings: %s", o.Total, o.TotalEarnings.SignedString()))

	table := md.TableSet{
		Header: []string{"Institution", "Product", "Class", "Value", "Earnings", "Yield", "7d (ann.)", "Overall (ann.)"},
	}
	for _, row := range o.Rows {
		table.Rows = append(table.Rows, []string{
			row.Institution,
			row.Product,
			row.Class.Label(),
			row.Value.String(),
			row.Earnings.SignedString(),
			row.HoldingYield.SignedString(),
			row.SevenDay.SignedString(),
			row.Overall.SignedString(),
		})
	}
	doc.H2("Assets")
	doc.Table(table)

	return doc.String()
}

// AssetsMarkdown renders the plain inventory of ledgers, without valuation.
func AssetsMarkdown(assets []*licai.Asset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Asset ledgers")

	table := md.TableSet{
		Header: []string{"ID", "Institution", "Product", "Class", "Currency", "Amount", "Txs"},
	}
	for _, a := range assets {
		table.Rows = append(table.Rows, []string{
			a.ID,
			a.Institution,
			a.Name,
			a.Class.Label(),
			a.Currency,
			licai.M(a.CurrentAmount, a.Currency).String(),
			fmt.Sprintf("%d", len(a.History)),
		})
	}
	doc.Table(table)

	return doc.String()
}

// Transaction renders a transaction to a one-line string.
func Transaction(t licai.Transaction) string {
	amount := licai.M(t.Amount, t.Currency)
	switch t.Type {
	case licai.Deposit:
		return fmt.Sprintf("%s deposited %s", t.Date, amount)
	case licai.Earning:
		if t.Amount.IsNegative() {
			return fmt.Sprintf("%s lost %s", t.Date, amount)
		}
		return fmt.Sprintf("%s earned %s", t.Date, amount)
	default:
		return fmt.Sprintf("%s %s %s", t.Date, t.Type, amount)
	}
}

// TransactionsMarkdown renders an asset's history, most recent first.
func TransactionsMarkdown(a *licai.Asset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s — %s", a.Institution, a.Name))
	doc.PlainText(fmt.Sprintf("Current amount: %s — total earnings: %s",
		licai.M(a.CurrentAmount, a.Currency),
		licai.M(a.TotalEarnings, a.EarningsCurrency).SignedString()))

	table := md.TableSet{
		Header: []string{"Date", "Type", "Amount", "Description", "ID"},
	}
	for _, t := range a.History {
		cur := t.Currency
		if cur == "" {
			cur = a.Currency
		}
		table.Rows = append(table.Rows, []string{
			t.Date.String(),
			string(t.Type),
			licai.M(t.Amount, cur).SignedString(),
			t.Description,
			t.ID,
		})
	}
	doc.H2("Transactions")
	doc.Table(table)

	return doc.String()
}
