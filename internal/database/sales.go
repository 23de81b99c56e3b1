package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/status"
	"sales-tracker-go/internal/store"

	"go.uber.org/zap"
)

// Compile-time check: *SaleService must satisfy store.SaleStore.
var _ store.SaleStore = (*SaleService)(nil)

type SaleService struct {
	db *sql.DB
}

func (s *SaleService) Upsert(ctx context.Context, sale models.Sale) (*models.Sale, error) {
	zap.L().Info("Upserting sale",
		zap.String("transaction_id", sale.TransactionId),
		zap.String("attendant_code", sale.AttendantCode),
		zap.String("campaign_code", sale.CampaignCode))

	row := s.db.QueryRowContext(ctx, queryUpsertSale,
		sale.TransactionId, nullableInt(sale.StatusCode), nullable(sale.StatusText),
		nullable(sale.ClientEmail), nullable(sale.ClientName), nullable(sale.ClientDocument),
		nullable(sale.ClientPhone), nullable(sale.ProductName), nullableInt64(sale.TotalValueCents),
		sale.CreatedAt, sale.UpdatedAt, sale.RawPayload,
		sale.AttendantCode, sale.AttendantName, sale.CampaignCode, nullable(sale.CampaignName))

	stored, err := scanSale(row)
	if err != nil {
		zap.L().Error("Failed to upsert sale",
			zap.String("transaction_id", sale.TransactionId), zap.Error(err))
		return nil, fmt.Errorf("unable to upsert sale: %w", err)
	}
	return stored, nil
}

func (s *SaleService) QueryByDateRange(ctx context.Context, start, end, attendantCode string) ([]models.Sale, error) {
	zap.L().Debug("Querying sales by date range",
		zap.String("start", start),
		zap.String("end", end),
		zap.String("attendant_code", attendantCode))

	var rows *sql.Rows
	var err error
	if attendantCode == "" {
		rows, err = s.db.QueryContext(ctx, queryGetSalesByDateRange, start, end)
	} else {
		rows, err = s.db.QueryContext(ctx, queryGetSalesByDateRangeForAttendant, start, end, strings.ToLower(attendantCode))
	}
	if err != nil {
		zap.L().Error("Failed to query sales by date range", zap.Error(err))
		return nil, fmt.Errorf("unable to query sales by date range: %w", err)
	}

	return collectSales(rows)
}

func (s *SaleService) List(ctx context.Context, filter store.SaleFilter) ([]models.Sale, error) {
	rows, err := s.db.QueryContext(ctx, queryListSales)
	if err != nil {
		zap.L().Error("Failed to query sales", zap.Error(err))
		return nil, fmt.Errorf("unable to query sales: %w", err)
	}

	sales, err := collectSales(rows)
	if err != nil {
		return nil, err
	}
	return filterSales(sales, filter), nil
}

func (s *SaleService) FindByTransactionId(ctx context.Context, transactionId string) (*models.Sale, error) {
	sale, err := scanSale(s.db.QueryRowContext(ctx, queryGetSaleByTransactionId, transactionId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sale %s: %w", transactionId, store.ErrNotFound)
		}
		zap.L().Error("Failed to query sale",
			zap.String("transaction_id", transactionId), zap.Error(err))
		return nil, fmt.Errorf("unable to query sale: %w", err)
	}
	return sale, nil
}

func (s *SaleService) UpdateStatus(ctx context.Context, transactionId string, statusCode int, statusText, updatedAt string) (*models.Sale, error) {
	result, err := s.db.ExecContext(ctx, queryUpdateSaleStatus, statusCode, statusText, updatedAt, transactionId)
	if err != nil {
		zap.L().Error("Failed to update sale status",
			zap.String("transaction_id", transactionId), zap.Error(err))
		return nil, fmt.Errorf("unable to update sale status: %w", err)
	}
	if err := requireRowChanged(result, transactionId); err != nil {
		return nil, err
	}

	zap.L().Info("Sale status updated",
		zap.String("transaction_id", transactionId),
		zap.Int("status_code", statusCode),
		zap.String("status_text", statusText))
	return s.FindByTransactionId(ctx, transactionId)
}

func (s *SaleService) AssignAttendant(ctx context.Context, transactionId string, attendant models.Attendant) (*models.Sale, error) {
	result, err := s.db.ExecContext(ctx, queryAssignSaleAttendant, attendant.Code, attendant.Name, transactionId)
	if err != nil {
		zap.L().Error("Failed to assign attendant",
			zap.String("transaction_id", transactionId), zap.Error(err))
		return nil, fmt.Errorf("unable to assign attendant: %w", err)
	}
	if err := requireRowChanged(result, transactionId); err != nil {
		return nil, err
	}

	zap.L().Info("Sale attendant assigned",
		zap.String("transaction_id", transactionId),
		zap.String("attendant_code", attendant.Code))
	return s.FindByTransactionId(ctx, transactionId)
}

func requireRowChanged(result sql.Result, transactionId string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sale %s: %w", transactionId, store.ErrNotFound)
	}
	return nil
}

// filterSales applies the list filters in memory. Classification is
// recomputed from the stored fields, never persisted.
func filterSales(sales []models.Sale, filter store.SaleFilter) []models.Sale {
	filtered := sales

	if filter.Status != "" {
		normalized := strings.ToLower(strings.TrimSpace(filter.Status))
		filtered = keep(filtered, func(sale models.Sale) bool {
			if string(status.Classify(sale.StatusText, sale.StatusCode)) == normalized {
				return true
			}
			if strings.Contains(strings.ToLower(sale.StatusText), normalized) {
				return true
			}
			return sale.StatusCode != nil && strconv.Itoa(*sale.StatusCode) == normalized
		})
	}

	if filter.AttendantCode != "" {
		normalized := strings.ToLower(strings.TrimSpace(filter.AttendantCode))
		filtered = keep(filtered, func(sale models.Sale) bool {
			return strings.ToLower(sale.AttendantCode) == normalized
		})
	}

	if filter.Search != "" {
		term := strings.ToLower(strings.TrimSpace(filter.Search))
		filtered = keep(filtered, func(sale models.Sale) bool {
			for _, field := range []string{sale.ClientEmail, sale.ClientName, sale.ClientDocument, sale.TransactionId, sale.ProductName} {
				if field != "" && strings.Contains(strings.ToLower(field), term) {
					return true
				}
			}
			return false
		})
	}

	return filtered
}

func keep(sales []models.Sale, match func(models.Sale) bool) []models.Sale {
	result := sales[:0:0]
	for _, sale := range sales {
		if match(sale) {
			result = append(result, sale)
		}
	}
	return result
}

type saleScanner interface {
	Scan(dest ...any) error
}

func scanSale(row saleScanner) (*models.Sale, error) {
	var sale models.Sale
	var statusCode, totalValue sql.NullInt64
	var statusText, clientEmail, clientName, clientDocument, clientPhone sql.NullString
	var productName, createdAt, updatedAt, rawPayload sql.NullString
	var attendantCode, attendantName, campaignCode, campaignName sql.NullString

	err := row.Scan(&sale.TransactionId, &statusCode, &statusText, &clientEmail, &clientName,
		&clientDocument, &clientPhone, &productName, &totalValue,
		&createdAt, &updatedAt, &rawPayload, &attendantCode, &attendantName,
		&campaignCode, &campaignName)
	if err != nil {
		return nil, err
	}

	if statusCode.Valid {
		code := int(statusCode.Int64)
		sale.StatusCode = &code
	}
	if totalValue.Valid {
		cents := totalValue.Int64
		sale.TotalValueCents = &cents
	}
	sale.StatusText = statusText.String
	sale.ClientEmail = clientEmail.String
	sale.ClientName = clientName.String
	sale.ClientDocument = clientDocument.String
	sale.ClientPhone = clientPhone.String
	sale.ProductName = productName.String
	sale.CreatedAt = createdAt.String
	sale.UpdatedAt = updatedAt.String
	sale.RawPayload = rawPayload.String
	sale.AttendantCode = attendantCode.String
	sale.AttendantName = attendantName.String
	sale.CampaignCode = campaignCode.String
	sale.CampaignName = campaignName.String

	return &sale, nil
}

func collectSales(rows *sql.Rows) ([]models.Sale, error) {
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var sales []models.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			zap.L().Error("Failed to scan sale row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan sale row: %w", err)
		}
		sales = append(sales, *sale)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during sale row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating sale rows: %w", err)
	}

	return sales, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt64(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}
