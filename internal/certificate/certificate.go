// Package certificate renders the warranty certificate handed to a purchaser.
//
// Page layout (A4):
//
//	company name + contact       | certificate number + issue date
//	------------------------------------------------------------
//	customer and device
//	plan name, coverage, terms
//	purchase date | expiry date | amount
//	------------------------------------------------------------
//	verification QR + footer
package certificate

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"warrantyhub/internal/domain"
)

const dateLayout = "02 Jan 2006"

var (
	colorPrimary = &props.Color{Red: 17, Green: 94, Blue: 89}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Number is the printed certificate reference for a purchase.
func Number(p *domain.Purchase) string {
	return fmt.Sprintf("WH-%s-%06d", p.PurchaseDate.UTC().Format("20060102"), p.ID)
}

// Render returns the PDF bytes. The purchase must have Plan and Plan.Company loaded.
func (g *Generator) Render(p *domain.Purchase) ([]byte, error) {
	if p.Plan == nil || p.Plan.Company == nil {
		return nil, fmt.Errorf("certificate: purchase %d has no plan or company loaded", p.ID)
	}
	company := p.Plan.Company

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Warranty Certificate "+Number(p), true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p, company, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(p))
	m.AddRows(planRows(p.Plan)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(periodRow(p))
	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(p))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("certificate: generate: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(p *domain.Purchase, company *domain.Company, issued time.Time) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s",
				nonEmpty(company.ContactEmail, company.Email),
				nonEmpty(company.ContactPhone, company.PhoneNumber),
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("WARRANTY CERTIFICATE", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(Number(p), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Issued: "+issued.UTC().Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(p *domain.Purchase) core.Row {
	name := p.CustomerName
	if name == "" && p.User != nil {
		name = p.User.Name
	}
	email := p.CustomerEmail
	if email == "" && p.User != nil {
		email = p.User.Email
	}

	return row.New(18).Add(
		col.New(12).Add(
			text.New("ISSUED TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(name, "-"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Phone: %s   |   Device: %s",
				nonEmpty(email, "-"),
				nonEmpty(p.CustomerPhone, "-"),
				nonEmpty(p.DeviceDetails, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func planRows(plan *domain.Plan) []core.Row {
	return []core.Row{
		row.New(10).Add(
			col.New(12).Add(text.New(plan.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 2,
			})),
		),
		row.New(14).Add(
			col.New(2).Add(text.New("Coverage", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(10).Add(text.New(plan.Coverage, props.Text{Size: 8, Top: 1})),
		),
		row.New(14).Add(
			col.New(2).Add(text.New("Terms", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(10).Add(text.New(plan.Terms, props.Text{Size: 8, Top: 1})),
		),
	}
}

func periodRow(p *domain.Purchase) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Valid from", p.PurchaseDate.UTC().Format(dateLayout)),
		cell("Valid until", p.ExpiryDate.UTC().Format(dateLayout)),
		cell("Amount paid", p.Amount.StringFixed(2)),
	)
}

func footerRow(p *domain.Purchase) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(Number(p), props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New(fmt.Sprintf("Status: %s", p.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 4,
			}),
			text.New("Present this certificate and the certificate number when filing a claim.", props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
