package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pautas-radio/internal/core/calc"
	"pautas-radio/internal/core/domain"
	"pautas-radio/internal/core/port"
)

// Seed inserts demo orders through repo. It does nothing when any order is
// already stored, so it is safe to run on every start.
func Seed(ctx context.Context, repo port.OrderRepository, logger *slog.Logger) error {
	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	for _, n := range counts {
		if n > 0 {
			logger.Info("seed skipped, orders already present")
			return nil
		}
	}

	today := domain.NewDate(time.Now())
	demos := []struct {
		client, campaign, agency string
		agreement                domain.AgreementType
		offset, days             int
		tariff                   int64
		spots                    int64
		tax                      domain.TaxOption
		status                   domain.OTCStatus
	}{
		{"POLLO LOCO", "TEMPORADA INVIERNO", "MEDIOS DEL NORTE", domain.AgreementCash, 0, 14, 350, 4, domain.Tax16, domain.StatusDraft},
		{"FARMACIAS DEL AHORRO", "SALUD 2025", "", domain.AgreementAdvanceInvoicing, -7, 28, 420, 6, domain.Tax8, domain.StatusSales},
		{"GOBIERNO DE NUEVO LEON", "INFORME", "", domain.AgreementMediaExchange, -30, 10, 500, 2, domain.TaxExempt, domain.StatusCapture},
	}

	for _, d := range demos {
		start := domain.NewDate(today.AddDate(0, 0, d.offset))
		end := domain.NewDate(start.AddDate(0, 0, d.days-1))
		days := calc.Calendar(start.Time, end.Time)

		row := domain.ExampleLineItem()
		row.Tariff = domain.NumberCell(d.tariff)
		for i, day := range days {
			if i%7 < 5 {
				row.DailyCounts[day.Key] = domain.NumberCell(d.spots)
			}
		}

		order := &domain.Order{
			Client:        d.client,
			BillTo:        d.client,
			Agency:        d.agency,
			Campaign:      d.campaign,
			Executive:     "CRISTA REYNA",
			SalesPlaza:    "MONTERREY",
			AgreementType: d.agreement,
			StartDate:     start,
			EndDate:       end,
			Schedule:      calc.Recalculate([]domain.LineItem{row}, days),
			Tax:           domain.TaxConfig{Option: d.tax, Currency: domain.CurrencyMN},
			Materials: []domain.Material{{
				ID:       uuid.NewString(),
				Name:     "SPOT " + d.campaign,
				FileName: "spot_20s.mp3",
				Version:  "VERSION1",
				Kind:     domain.MaterialSpot,
				Duration: domain.DefaultDuration("spot_20s.mp3"),
			}},
			Status: d.status,
		}
		if d.status != domain.StatusDraft {
			at := time.Now().UTC()
			order.SubmittedAt = &at
		}
		if err := repo.Create(ctx, order); err != nil {
			return fmt.Errorf("seed %s: %w", d.client, err)
		}
		logger.Info("seeded order", slog.String("folio", order.Folio), slog.String("client", order.Client))
	}
	return nil
}
