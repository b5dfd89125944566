package goals

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"

	"github.com/goaltrack/goaltrack-backend/internal/auth"
	"github.com/goaltrack/goaltrack-backend/internal/domain"
)

// Report renders the caller's goals as a downloadable PDF.
func (h *Handler) Report(c *fiber.Ctx) error {
	goals, err := h.Store.ListByUser(c.UserContext(), auth.UserID(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch goals")
	}

	name := auth.UserID(c)
	if u := auth.CurrentUser(c); u != nil {
		name = u.Username
	}

	out, err := buildReportPDF(name, goals)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build report")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="goals.pdf"`)
	return c.Send(out)
}

func buildReportPDF(username string, goals []domain.Goal) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Goal Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Goals")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("User: %s", username))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	if len(goals) == 0 {
		pdf.Cell(0, 8, "No goals yet.")
	} else {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(120, 7, "Goal")
		pdf.Cell(40, 7, "Created")
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		for _, g := range goals {
			pdf.Cell(120, 7, g.Text)
			pdf.Cell(40, 7, g.CreatedAt.Format("2006-01-02"))
			pdf.Ln(7)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
