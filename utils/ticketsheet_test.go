package utils

import (
	"bytes"
	"testing"
	"ticketflix/model"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBlocks(t *testing.T, n int) []TicketBlock {
	t.Helper()
	qr, err := GenerateQRCode("https://ticketflix.example/view-coupon/test", 128)
	require.NoError(t, err)

	blocks := make([]TicketBlock, n)
	for i := range blocks {
		blocks[i] = TicketBlock{
			Coupon: model.Coupon{
				Code:       "TFAAAA1111",
				AmountPaid: 200,
				IssuerCode: "AB1234",
				SeatClass:  "STANDARD",
				ValidUntil: time.Now().Add(24 * time.Hour),
			},
			QRPng: qr,
		}
	}
	return blocks
}

func TestBuildTicketSheetHandlesAnyCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 25} {
		sheet, err := BuildTicketSheet(sampleBlocks(t, n))
		require.NoError(t, err, "count %d", n)
		assert.True(t, bytes.HasPrefix(sheet, []byte("%PDF")), "count %d: not a PDF", n)
	}
}

func TestTicketsPerPageArithmetic(t *testing.T) {
	// 277mm usable, 62mm blocks with 6mm spacing: four tickets fit, a
	// fifth would cross the bottom margin
	assert.Equal(t, 4, TicketsPerPage())
}

func TestBuildTicketSheetPaginates(t *testing.T) {
	perPage := TicketsPerPage()
	require.Greater(t, perPage, 0)

	onePage, err := BuildTicketSheet(sampleBlocks(t, perPage))
	require.NoError(t, err)
	twoPages, err := BuildTicketSheet(sampleBlocks(t, perPage+1))
	require.NoError(t, err)

	// the overflowing block forces a second page
	assert.Greater(t, len(twoPages), len(onePage))
	assert.True(t, bytes.HasPrefix(twoPages, []byte("%PDF")))
}

func TestGenerateQRCodeProducesPNG(t *testing.T) {
	qr, err := GenerateQRCode("https://ticketflix.example/view-coupon/abc", 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(qr, []byte("\x89PNG")))
}
