package utils

import (
	"bytes"
	"fmt"
	"ticketflix/model"

	"github.com/go-pdf/fpdf"
)

// TicketBlock is one printable coupon: the record plus its QR PNG.
type TicketBlock struct {
	Coupon model.Coupon
	QRPng  []byte
}

// A4 portrait, millimetres.
const (
	sheetMargin  = 10.0
	pageHeight   = 297.0
	blockWidth   = 190.0
	BlockHeight  = 62.0
	blockSpacing = 6.0
)

// TicketsPerPage is how many fixed-height blocks fit before pagination.
func TicketsPerPage() int {
	usable := pageHeight - 2*sheetMargin
	count := 0
	y := 0.0
	for y+BlockHeight <= usable {
		count++
		y += BlockHeight + blockSpacing
	}
	return count
}

// BuildTicketSheet lays the blocks onto pages and returns the PDF.
// Zero, one, and many coupons take the same path; a new page starts
// whenever the next block would cross the bottom margin.
func BuildTicketSheet(blocks []TicketBlock) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := sheetMargin
	for i, block := range blocks {
		if y+BlockHeight > pageHeight-sheetMargin {
			pdf.AddPage()
			y = sheetMargin
		}
		drawTicket(pdf, block, y, i)
		y += BlockHeight + blockSpacing
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTicket(pdf *fpdf.Fpdf, block TicketBlock, y float64, idx int) {
	c := block.Coupon

	pdf.SetDrawColor(60, 60, 60)
	pdf.Rect(sheetMargin, y, blockWidth, BlockHeight, "D")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(sheetMargin+6, y+12, "TicketFlix")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(sheetMargin+6, y+18, "Pre-paid movie coupon")

	pdf.SetFont("Courier", "B", 16)
	pdf.Text(sheetMargin+6, y+32, c.Code)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(sheetMargin+6, y+42, fmt.Sprintf("Amount: Rs. %.2f", c.AmountPaid))
	pdf.Text(sheetMargin+6, y+49, "Class: "+c.SeatClass)
	pdf.Text(sheetMargin+6, y+56, "Issued by: "+c.IssuerCode)

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(sheetMargin+80, y+56, "Valid until "+c.ValidUntil.Format("02 Jan 2006 15:04"))

	if len(block.QRPng) > 0 {
		name := fmt.Sprintf("qr-%d", idx)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(block.QRPng))
		qrSize := BlockHeight - 14
		pdf.ImageOptions(name, sheetMargin+blockWidth-qrSize-7, y+7, qrSize, qrSize, false, opts, 0, "")
	}
}
