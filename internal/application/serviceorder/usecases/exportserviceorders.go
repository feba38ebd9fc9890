package usecases

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/serviceorder"
	"garage/internal/infrastructure/export"
	"garage/internal/shared/biztime"
	"garage/internal/shared/logger"
)

const DefaultExportMaxRows = 5000

type ExportServiceOrdersResult struct {
	Filename  string
	Content   []byte
	Rows      int
	Total     int64
	Truncated bool
}

// ExportServiceOrdersUseCase renders the filtered list as an xlsx workbook.
type ExportServiceOrdersUseCase struct {
	orders   serviceorder.Repository
	enricher *Enricher
	maxRows  int
	logger   logger.Interface
}

func NewExportServiceOrdersUseCase(
	orders serviceorder.Repository,
	enricher *Enricher,
	maxRows int,
	logger logger.Interface,
) *ExportServiceOrdersUseCase {
	if maxRows <= 0 {
		maxRows = DefaultExportMaxRows
	}
	return &ExportServiceOrdersUseCase{
		orders:   orders,
		enricher: enricher,
		maxRows:  maxRows,
		logger:   logger,
	}
}

var exportColumns = []export.Column{
	{Header: "Number", Width: 16},
	{Header: "Created", Width: 18, Kind: export.KindDateTime},
	{Header: "Scheduled", Width: 12, Kind: export.KindDate},
	{Header: "Finished", Width: 18, Kind: export.KindDateTime},
	{Header: "Status", Width: 14},
	{Header: "Priority", Width: 10},
	{Header: "Service center", Width: 22},
	{Header: "Client", Width: 26},
	{Header: "Phone", Width: 16},
	{Header: "Vehicle", Width: 26},
	{Header: "Technician", Width: 20},
	{Header: "Description", Width: 40},
	{Header: "Labor", Width: 12, Kind: export.KindMoney},
	{Header: "Discount", Width: 12, Kind: export.KindMoney},
	{Header: "Total", Width: 14, Kind: export.KindMoney},
	{Header: "Payment method", Width: 16},
}

func (uc *ExportServiceOrdersUseCase) Execute(ctx context.Context, query ListServiceOrdersQuery) (*ExportServiceOrdersResult, error) {
	uc.logger.Infow("executing export service orders use case", "search", query.Search, "status", query.Status)

	filter, err := buildFilter(query, uc.maxRows)
	if err != nil {
		return nil, err
	}
	filter.Page = 1
	filter.PerPage = uc.maxRows

	orders, total, err := uc.orders.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list service orders for export", "error", err)
		return nil, err
	}
	rel, err := uc.enricher.Load(ctx, orders)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	table := export.Table{
		Sheet:       "Services",
		Title:       "Service orders",
		GeneratedAt: now,
		Columns:     exportColumns,
		Rows:        make([][]any, 0, len(orders)),
	}
	for _, o := range orders {
		table.Rows = append(table.Rows, exportRow(dto.ToServiceOrderDTO(o, rel), o))
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, table); err != nil {
		uc.logger.Errorw("failed to render service order export", "error", err)
		return nil, err
	}

	result := &ExportServiceOrdersResult{
		Filename:  fmt.Sprintf("services-%s.xlsx", biztime.Format(now, "20060102-150405")),
		Content:   buf.Bytes(),
		Rows:      len(orders),
		Total:     total,
		Truncated: total > int64(len(orders)),
	}
	if result.Truncated {
		uc.logger.Warnw("service order export truncated", "rows", result.Rows, "total", total)
	}
	return result, nil
}

func exportRow(d *dto.ServiceOrderDTO, o *serviceorder.ServiceOrder) []any {
	var centerName, clientName, phone, vehicleName, technician, paymentMethod string
	if d.ServiceCenter != nil {
		centerName = d.ServiceCenter.Name
	}
	if d.Client != nil {
		clientName, phone = d.Client.Name, d.Client.Phone
	}
	if d.Vehicle != nil {
		vehicleName = strings.TrimSpace(fmt.Sprintf("%s %s %s", d.Vehicle.Plate, d.Vehicle.Brand, d.Vehicle.Model))
	}
	if d.Technician != nil {
		technician = d.Technician.Name
	}
	if d.PaymentMethod != nil {
		paymentMethod = d.PaymentMethod.Name
	}

	return []any{
		d.ServiceNumber,
		o.CreatedAt(),
		o.ScheduledDate(),
		o.FinishedAt(),
		d.Status.Label,
		d.Priority,
		centerName,
		clientName,
		phone,
		vehicleName,
		technician,
		d.Description,
		o.LaborCost(),
		o.Discount(),
		o.TotalAmount(),
		paymentMethod,
	}
}
