package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/company_reporting/internal/domain"
	"github.com/locvowork/company_reporting/internal/logger"
	"github.com/locvowork/company_reporting/internal/service/serviceutils"
)

// ReportService is the read side of the reporting pipeline.
type ReportService interface {
	Reports() []domain.Report
	Fetch(ctx context.Context, name string) (domain.Report, *domain.ResultSet, error)
}

// WorkbookRenderer renders a single report as an xlsx workbook.
type WorkbookRenderer interface {
	WriteReport(ctx context.Context, w io.Writer, name string) error
}

type ReportHandler struct {
	svc      ReportService
	workbook WorkbookRenderer
}

func NewReportHandler(svc ReportService, workbook WorkbookRenderer) *ReportHandler {
	return &ReportHandler{svc: svc, workbook: workbook}
}

// ListHandler handles GET /reports
func (h *ReportHandler) ListHandler(c echo.Context) error {
	reports := h.svc.Reports()
	items := make([]ReportSummaryDTO, 0, len(reports))
	for _, r := range reports {
		items = append(items, ReportSummaryDTO{Name: r.Name, Label: r.Label, Exported: r.Export})
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Reports retrieved successfully", items)
}

// GetHandler handles GET /reports/:name
func (h *ReportHandler) GetHandler(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("name")
	logger.InfoLog(ctx, "GET /reports/%s", name)

	report, rs, err := h.svc.Fetch(ctx, name)
	if err != nil {
		return serviceutils.ResponseError(c, serviceutils.StatusFor(err), "Failed to run report", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Report retrieved successfully", ReportDTO{
		Name:    report.Name,
		Label:   report.Label,
		Columns: rs.Columns,
		Rows:    rs.Records(),
	})
}

// WorkbookHandler handles GET /reports/:name/xlsx
func (h *ReportHandler) WorkbookHandler(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("name")

	var buf bytes.Buffer
	if err := h.workbook.WriteReport(ctx, &buf, name); err != nil {
		return serviceutils.ResponseError(c, serviceutils.StatusFor(err), "Failed to generate Excel file", err)
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	c.Response().Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
