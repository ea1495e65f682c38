package payments

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

const exportSheet = "Supplier Payments"

var exportHeader = []string{"ID", "Purchase Order", "Total", "Paid", "Unpaid", "Last Given", "Status", "Method", "Payment Date", "Paid By"}

// BuildWorkbook renders the full ledger as an xlsx workbook.
func BuildWorkbook(paymentsList []SupplierPayment) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return nil, err
		}
	}

	printer := message.NewPrinter(language.English)
	for i, p := range paymentsList {
		values := []any{
			p.ID,
			p.PurchaseOrderID,
			printer.Sprintf("%.2f", p.TotalAmount),
			printer.Sprintf("%.2f", p.PaidAmount),
			printer.Sprintf("%.2f", p.UnpaidAmount),
			printer.Sprintf("%.2f", p.GivenAmount),
			string(p.Status),
			p.Method,
			p.PaymentDate.Format("2006-01-02"),
			p.PaidBy,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	paymentsList, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("export supplier payments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	f, err := BuildWorkbook(paymentsList)
	if err != nil {
		h.logger.Error("build payments workbook", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "supplier_payments.xlsx"))
	if err := f.Write(w); err != nil {
		h.logger.Error("write payments workbook", slog.Any("error", err))
	}
}
