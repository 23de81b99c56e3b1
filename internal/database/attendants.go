package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/store"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *AttendantService must satisfy store.AttendantStore.
var _ store.AttendantStore = (*AttendantService)(nil)

type AttendantService struct {
	db *sql.DB
}

func (s *AttendantService) FindByCode(ctx context.Context, code string) (*models.Attendant, error) {
	var attendant models.Attendant
	var costText string
	err := s.db.QueryRowContext(ctx, queryGetAttendantByCode, strings.ToLower(code)).
		Scan(&attendant.Code, &attendant.Name, &costText)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("attendant %s: %w", code, store.ErrNotFound)
		}
		zap.L().Error("Failed to query attendant", zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("unable to query attendant: %w", err)
	}

	attendant.MonthlyCost, err = decimal.NewFromString(costText)
	if err != nil {
		return nil, fmt.Errorf("unable to parse monthly cost %q: %w", costText, err)
	}
	return &attendant, nil
}

// ListAll returns every registered attendant except the reserved
// unassigned entry, ordered by name.
func (s *AttendantService) ListAll(ctx context.Context) ([]models.Attendant, error) {
	rows, err := s.db.QueryContext(ctx, queryListAttendants)
	if err != nil {
		zap.L().Error("Failed to query attendants", zap.Error(err))
		return nil, fmt.Errorf("unable to query attendants: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var attendants []models.Attendant
	for rows.Next() {
		var attendant models.Attendant
		var costText string
		if err := rows.Scan(&attendant.Code, &attendant.Name, &costText); err != nil {
			zap.L().Error("Failed to scan attendant row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan attendant row: %w", err)
		}
		if attendant.Code == models.UnassignedAttendant.Code {
			continue
		}
		attendant.MonthlyCost, err = decimal.NewFromString(costText)
		if err != nil {
			return nil, fmt.Errorf("unable to parse monthly cost %q: %w", costText, err)
		}
		attendants = append(attendants, attendant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendant rows: %w", err)
	}
	return attendants, nil
}

func (s *AttendantService) Create(ctx context.Context, attendant models.Attendant) error {
	_, err := s.db.ExecContext(ctx, queryInsertAttendant,
		attendant.Code, attendant.Name, attendant.MonthlyCost.String())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("attendant %s: %w", attendant.Code, store.ErrDuplicateCode)
		}
		zap.L().Error("Failed to create attendant", zap.String("code", attendant.Code), zap.Error(err))
		return fmt.Errorf("unable to create attendant: %w", err)
	}

	zap.L().Info("Attendant created",
		zap.String("code", attendant.Code), zap.String("name", attendant.Name))
	return nil
}

func (s *AttendantService) Update(ctx context.Context, code string, attendant models.Attendant) error {
	result, err := s.db.ExecContext(ctx, queryUpdateAttendant,
		attendant.Code, attendant.Name, attendant.MonthlyCost.String(), strings.ToLower(code))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("attendant %s: %w", attendant.Code, store.ErrDuplicateCode)
		}
		zap.L().Error("Failed to update attendant", zap.String("code", code), zap.Error(err))
		return fmt.Errorf("unable to update attendant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("attendant %s: %w", code, store.ErrNotFound)
	}
	return nil
}

func (s *AttendantService) Delete(ctx context.Context, code string) error {
	result, err := s.db.ExecContext(ctx, queryDeleteAttendant, strings.ToLower(code))
	if err != nil {
		zap.L().Error("Failed to delete attendant", zap.String("code", code), zap.Error(err))
		return fmt.Errorf("unable to delete attendant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("attendant %s: %w", code, store.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
